package templates

// Shown to a visitor whose tracking link goes nowhere.
const linkErrorTmpl = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{title}}</title></head>
<body style="font-family:sans-serif; text-align:center; padding:48px 12px;">
	<p style="font-size:20px; color:#000000; margin:0 0 12px 0;"><b>{{title}}</b></p>
	<p style="font-size:14px; color:#555555; margin:0;">{{msg}}</p>
</body>
</html>
`

var LinkError = MustacheMust(linkErrorTmpl)

// LinkErrorPage renders the page, title and msg are HTML escaped.
func LinkErrorPage(title, msg string) string {
	return LinkError.Render(map[string]string{"title": title, "msg": msg})
}
