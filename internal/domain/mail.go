package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RosterPublishedMailData struct {
	FullName    string `json:"fullName"`
	SessionName string `json:"sessionName"`
	Flow        string `json:"flow"`
	Weeks       int    `json:"weeks"`
	Assignments int    `json:"assignments"`
}
