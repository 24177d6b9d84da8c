package echoportal

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/trezcool/darasa/core/content"
	"github.com/trezcool/darasa/core/user"
)

func render(ctx echo.Context, code int, node Node) error {
	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	ctx.Response().WriteHeader(code)
	return node.Render(ctx.Response())
}

func basePage(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Darasa")),
		),
		Body(
			Main(body...),
		),
	)
}

func loginPage(errMsg string) Node {
	body := []Node{
		H1(Text("Darasa")),
		P(Text("Sign in to your school portal.")),
		Form(
			Method("post"),
			Action("/login"),
			Label(Text("Username")),
			Input(Type("text"), Name("username"), Required()),
			Label(Text("Password")),
			Input(Type("password"), Name("password"), Required()),
			Button(Type("submit"), Text("Login")),
		),
		P(A(Href("/register"), Text("Create an account"))),
	}
	if errMsg != "" {
		body = append([]Node{P(Class("error"), Text(errMsg))}, body...)
	}
	return basePage("Login", body...)
}

func registerPage(fldErrs map[string]string, success string, form user.NewUser) Node {
	fieldError := func(field string) Node {
		if msg, ok := fldErrs[field]; ok {
			return P(Class("error"), Text(msg))
		}
		return nil
	}

	body := []Node{
		H1(Text("Create an account")),
		fieldError(""),
		Form(
			Method("post"),
			Action("/register"),
			Label(Text("Username")),
			Input(Type("text"), Name("username"), Value(form.Username), Required()),
			fieldError("username"),
			Label(Text("Password")),
			Input(Type("password"), Name("password"), Required()),
			fieldError("password"),
			Label(Text("Role")),
			Select(
				Name("role"),
				Option(Value(user.RoleStudent), Text("Student")),
				Option(Value(user.RoleTeacher), Text("Teacher")),
				Option(Value(user.RoleHead), Text("Head")),
			),
			fieldError("role"),
			Label(Text("Section")),
			Input(Type("text"), Name("section"), Value(form.Section), Placeholder(user.DefaultSection)),
			Button(Type("submit"), Text("Register")),
		),
		P(A(Href("/login"), Text("Back to login"))),
	}
	if success != "" {
		body = append([]Node{P(Class("success"), Text(success))}, body...)
	}
	return basePage("Register", body...)
}

func dashboardPage(ident user.Identity, assignments []content.Assignment, notifications []content.Notification, canManage bool) Node {
	assignmentItems := Map(assignments, func(a content.Assignment) Node {
		return Li(
			Text(a.Text),
			If(canManage,
				Form(
					Method("post"),
					Action(fmt.Sprintf("/delete_assignment/%d", a.ID)),
					Button(Type("submit"), Text("Delete")),
				),
			),
		)
	})
	notificationItems := Map(notifications, func(n content.Notification) Node {
		return Li(
			Strong(Text(n.Title)),
			Text(" — "+n.Text),
			If(canManage,
				Form(
					Method("post"),
					Action(fmt.Sprintf("/delete_notification/%d", n.ID)),
					Button(Type("submit"), Text("Delete")),
				),
			),
		)
	})

	body := []Node{
		H1(Text("Dashboard")),
		P(Textf("Welcome %s (%s, %s)", ident.Username, ident.Role, ident.Section)),
		P(A(Href("/logout"), Text("Logout"))),

		H2(Textf("Assignments — %s", ident.Section)),
		Ul(Group(assignmentItems)),

		H2(Text("Notifications")),
		Ul(Group(notificationItems)),
	}

	if canManage {
		body = append(body,
			H2(Text("Add assignment")),
			Form(
				Method("post"),
				Action("/add_assignment"),
				Label(Text("Text")),
				Input(Type("text"), Name("text")),
				Label(Text("Section")),
				Input(Type("text"), Name("section"), Value(ident.Section)),
				Button(Type("submit"), Text("Add")),
			),
			H2(Text("Add notification")),
			Form(
				Method("post"),
				Action("/add_notification"),
				Label(Text("Title")),
				Input(Type("text"), Name("title")),
				Label(Text("Text")),
				Input(Type("text"), Name("text")),
				Button(Type("submit"), Text("Add")),
			),
		)
	}

	return basePage("Dashboard", body...)
}

func errorPage(code int, msg string) Node {
	return basePage(
		http.StatusText(code),
		H1(Textf("%d %s", code, http.StatusText(code))),
		P(Text(msg)),
		P(A(Href("/dashboard"), Text("Back to dashboard"))),
	)
}
