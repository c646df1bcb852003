package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type templateData struct {
	Login string
	Token string
}

// Built-in mail bodies. Kept as compiled templates so a malformed token or
// login cannot break out of the HTML.
var templates = map[string]*template.Template{
	"verification": template.Must(template.New("verification").Parse(`
<p>Hello {{.Login}},</p>
<p>Please verify your email address by using the code below:</p>
<p><b>{{.Token}}</b></p>
<p>If you did not create an account, no further action is required.</p>
`)),
	"password_reset": template.Must(template.New("password_reset").Parse(`
<p>Hello {{.Login}},</p>
<p>A password reset was requested for your account. Use the code below to
set a new password:</p>
<p><b>{{.Token}}</b></p>
<p>If you did not request a reset, you can ignore this message.</p>
`)),
}

func renderTemplate(name string, data templateData) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
