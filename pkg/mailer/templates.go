package mailer

import (
	"bytes"
	"html/template"
)

var resetPasswordTpl = template.Must(template.New("reset_password").Parse(`
<h2>Hello {{.Name}}</h2>
<p>You requested a password reset.</p>
<p>Please use the link below to reset your password.</p>
<p>This reset link is valid for only 15 minutes.</p>
<a href="{{.URL}}" clicktracking="off">{{.URL}}</a>
<p>Regards,</p>
<p>{{.AppName}}</p>
`))

var welcomeTpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome {{.Name}}</h2>
<p>Your account has been created. Happy blogging!</p>
<p>Regards,</p>
<p>{{.AppName}}</p>
`))

var contactTpl = template.Must(template.New("contact").Parse(`
<h2>New contact message</h2>
<p>From: {{.Name}} ({{.Email}})</p>
<p>{{.Message}}</p>
<p>Sent via {{.AppName}}</p>
`))

// ContactHTML renders a contact-form message relayed to the site operator.
func ContactHTML(appName, name, email, message string) string {
	return render(contactTpl, map[string]string{
		"AppName": appName, "Name": name, "Email": email, "Message": message,
	})
}

// ResetPasswordHTML renders the password reset email. The URL embeds the
// plaintext token; the stored hash never leaves the server.
func ResetPasswordHTML(appName, name, url string) string {
	return render(resetPasswordTpl, map[string]string{"AppName": appName, "Name": name, "URL": url})
}

// WelcomeHTML renders the post-registration welcome email.
func WelcomeHTML(appName, name string) string {
	return render(welcomeTpl, map[string]string{"AppName": appName, "Name": name})
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}
