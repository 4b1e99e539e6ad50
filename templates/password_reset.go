package templates

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// PasswordResetSubject is the subject line of the reset email
const PasswordResetSubject = "Reset your AirTrip password"

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`Hello,

We received a request to reset the password for {{.Email}}.

Open the link below to choose a new password. The link expires in {{.Minutes}} minutes
and can only be used once.

{{.Link}}

If you did not ask for a reset you can ignore this message.

AirTrip
`))

// PasswordResetData holds the values substituted into the reset email
type PasswordResetData struct {
	Email   string
	Link    string
	Minutes int
}

// RenderPasswordReset builds the plain-text body of the reset email
func RenderPasswordReset(email, link string, validFor time.Duration) (string, error) {
	var buf bytes.Buffer
	data := PasswordResetData{
		Email:   email,
		Link:    link,
		Minutes: int(validFor.Minutes()),
	}
	if err := passwordResetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render password reset email: %w", err)
	}
	return buf.String(), nil
}
