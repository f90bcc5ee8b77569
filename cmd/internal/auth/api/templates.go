package authapi

import "html/template"

// The pages are deliberately tiny. The service exists to exercise the auth
// flow, not to be looked at.

var landingPage = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head><title>Clearance</title></head>
<body>
<p>Hello, World! Nothing interesting to see here...</p>
<p><a href="/login">Log in</a></p>
</body>
</html>
`))

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Clearance Level</title></head>
<body>
<h1>Clearance Level</h1>
<form action="/login" method="post">
<label for="name">Name</label>
<input type="text" id="name" name="name" autocomplete="username">
<label for="pw">Password</label>
<input type="password" id="pw" name="pw" autocomplete="current-password">
<button type="submit">Enter</button>
</form>
</body>
</html>
`))

type secretsPageData struct {
	Name string
}

var secretsPage = template.Must(template.New("secrets").Parse(`<!DOCTYPE html>
<html>
<head><title>Secrets</title></head>
<body>
<h1>Welcome, {{.Name}}.</h1>
<p>First rule of coding tests: you do not talk about coding tests.</p>
<form action="/logout" method="post">
<button type="submit">Log out</button>
</form>
</body>
</html>
`))
