package model

// Account types
const (
	AccountTypeAdmin      = "Admin"
	AccountTypeStudent    = "Student"
	AccountTypeInstructor = "Instructor"
)

// User is a platform account. Courses holds the IDs of the courses the user
// teaches or is enrolled in.
type User struct {
	ID          string   `db:"id" json:"_id"`
	FirstName   string   `db:"first_name" json:"firstName"`
	LastName    string   `db:"last_name" json:"lastName"`
	Email       string   `db:"email" json:"email"`
	AccountType string   `db:"account_type" json:"accountType"`
	Image       string   `db:"image" json:"image"`
	Courses     []string `json:"courses"`
}

func (u *User) IsInstructor() bool { return u.AccountType == AccountTypeInstructor }

func (u *User) IsAdmin() bool { return u.AccountType == AccountTypeAdmin }
