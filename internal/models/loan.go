package models

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Loan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"loanID"`
	MemberName string             `bson:"memberName" json:"memberName"`
	ISBN       string             `bson:"ISBN" json:"ISBN"`
	Title      string             `bson:"title" json:"title"`
	BookID     string             `bson:"bookID" json:"bookID"`
	LoanDate   string             `bson:"loanDate" json:"loanDate"`
}

const (
	LoanEntity = "loan"

	// MaxLoansPerMember caps the outstanding loans a single member may hold.
	MaxLoansPerMember = 2
)

var loanDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidLoanDate accepts yyyy-mm-dd only.
func IsValidLoanDate(date string) bool {
	return loanDatePattern.MatchString(date)
}

func IsValidMemberName(name string) bool {
	return len(name) > 0
}

var LoanFields = map[string]bool{
	"memberName": true,
	"ISBN":       true,
	"title":      true,
	"bookID":     true,
	"loanDate":   true,
}

func IsLoanField(field string) bool {
	return LoanFields[field]
}
