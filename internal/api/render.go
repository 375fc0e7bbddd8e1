package api

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer satisfies echo.Renderer with a fixed set of server-side templates.
// The markup is deliberately minimal; page design is not this service's job.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.New("pages").Parse(pageTemplates))}
}

// Render executes the named template into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if t := r.templates.Lookup(name); t == nil {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return r.templates.ExecuteTemplate(w, name, data)
}

const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · Course Portal</title></head>
<body>
{{with .Flash}}<p class="notice notice-{{.Kind}}">{{.Message}}</p>{{end}}
{{end}}

{{define "foot"}}</body>
</html>{{end}}

{{define "register"}}{{template "head" .}}
<h1>Create account</h1>
<form method="post" action="/register">
  <label>Email <input type="email" name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <label>Confirm password <input type="password" name="confirm"></label>
  <button type="submit">Register</button>
</form>
<p>Already have an account? <a href="/login">Log in</a></p>
{{template "foot" .}}{{end}}

{{define "login"}}{{template "head" .}}
<h1>Log in</h1>
<form method="post" action="/login{{with .Next}}?next={{.}}{{end}}">
  <label>Email <input type="email" name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Log in</button>
</form>
<p>New here? <a href="/register">Create an account</a></p>
{{template "foot" .}}{{end}}

{{define "dashboard"}}{{template "head" .}}
<h1>Course overview</h1>
<p>Signed in as {{.User.Email}} · <a href="/logout">Log out</a></p>
<ul>
{{range .Parts}}
  <li>
    <a href="/parts/{{.ID}}">{{.Title}}</a>
    <p>{{.Description}}</p>
  </li>
{{end}}
</ul>
{{template "foot" .}}{{end}}

{{define "part_detail"}}{{template "head" .}}
<h1>{{.Part.Title}}</h1>
<p>{{.Part.Description}}</p>
<form method="post" action="/parts/{{.Part.ID}}/start">
  <button type="submit">Start this part</button>
</form>
<ol>
{{range .Part.Classes}}
  <li><strong>{{.Title}}</strong> — {{.Description}}</li>
{{end}}
</ol>
<p><a href="/dashboard">Back to overview</a></p>
{{template "foot" .}}{{end}}

{{define "error"}}{{template "head" .}}
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back home</a></p>
{{template "foot" .}}{{end}}
`
