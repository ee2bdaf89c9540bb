// Package domain defines the persistence models for users, questions,
// answers, comments, and tags. These types are mapped with GORM and form
// the core data layer of the Q&A application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Reputation is the user's point
// balance, adjusted atomically by the reputation ledger; it is never
// recomputed from history.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username / Email: unique login identifiers.
//   - PasswordHash: bcrypt hash; never serialized.
//   - Reputation: signed point balance (may go negative).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type User struct {
	ID           string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Username     string         `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `json:"-"          gorm:"type:varchar(255);not null"`
	Bio          string         `json:"bio"        gorm:"type:text"`
	Reputation   int            `json:"reputation" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Question is a top-level post. VoteCount is maintained incrementally by
// the vote engine via atomic counter updates and must always equal the sum
// of +1/-1 over all votes referencing the question.
type Question struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	OwnerID      string         `json:"owner_id"      gorm:"type:char(36);not null;index:idx_owner_questions"`
	Title        string         `json:"title"         gorm:"type:varchar(255);not null"`
	Body         string         `json:"body"          gorm:"type:text;not null"`
	VoteCount    int            `json:"vote_count"    gorm:"not null;default:0"`
	AnswerCount  int            `json:"answer_count"  gorm:"not null;default:0"`
	BestAnswerID *string        `json:"best_answer_id,omitempty" gorm:"type:char(36)"`
	Tags         []Tag          `json:"tags,omitempty" gorm:"many2many:question_tags"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"             gorm:"index"`

	// Owner is the authoring user. Questions are retained (soft-deleted)
	// independently of the owner row.
	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// Answer is a reply to a question. IsAccepted marks the question owner's
// chosen best answer; at most one accepted answer per question is enforced
// at the service layer.
type Answer struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	QuestionID string         `json:"question_id" gorm:"type:char(36);not null;index:idx_question_answers"`
	OwnerID    string         `json:"owner_id"    gorm:"type:char(36);not null;index"`
	Body       string         `json:"body"        gorm:"type:text;not null"`
	VoteCount  int            `json:"vote_count"  gorm:"not null;default:0"`
	IsAccepted bool           `json:"is_accepted" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`

	// Question is the parent post. Answers are cascade-deleted if their
	// question is removed.
	Question Question `json:"-" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "answers" }

// Comment is a short remark attached to exactly one question or one answer.
// Exactly one of QuestionID/AnswerID is set; the check is enforced at the
// service layer since SQLite cannot express the exclusive-arc cleanly.
type Comment struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID    string         `json:"owner_id"    gorm:"type:char(36);not null;index"`
	QuestionID *string        `json:"question_id,omitempty" gorm:"type:char(36);index"`
	AnswerID   *string        `json:"answer_id,omitempty"   gorm:"type:char(36);index"`
	Body       string         `json:"body"        gorm:"type:text;not null"`
	VoteCount  int            `json:"vote_count"  gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Tag labels questions for discovery. Name is stored lowercased.
type Tag struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(64);not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }
