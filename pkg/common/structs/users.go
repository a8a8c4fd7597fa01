package structs

import "time"

// UserProfile holds the directory profile of a user. Fields the directory did not
// return carry the "No Data" sentinel.
type UserProfile struct {
	EmailAddress string `json:"email_address"`
	UserName     string `json:"user_name"`
	UserFamily   string `json:"user_family"`
	UserFullName string `json:"user_full_name"`
	UserTitle    string `json:"user_title"`
}

func (u *UserProfile) GetEmailAddress() string {
	return u.EmailAddress
}

func (u *UserProfile) GetUserName() string {
	return u.UserName
}

func (u *UserProfile) GetUserFamily() string {
	return u.UserFamily
}

func (u *UserProfile) GetUserFullName() string {
	return u.UserFullName
}

func (u *UserProfile) GetUserTitle() string {
	return u.UserTitle
}

// AccountStatus is the outcome of an account enabled check.
type AccountStatus struct {
	Username           string    `json:"username"`
	Found              bool      `json:"found"`
	Enabled            bool      `json:"enabled"`
	UserAccountControl int32     `json:"user_account_control"`
	CheckedAt          time.Time `json:"checked_at"`
}
