package domain

// CommonTemplateData holds fields that are common to all page templates.
type CommonTemplateData struct {
	Error     string
	Success   string
	User      *User
	CSRFToken string
}
