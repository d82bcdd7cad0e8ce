package templates

import (
	"net/mail"
	"net/url"
	"strings"
)

// Plain text, so everything uses triple braces to skip HTML escaping.
const connectSubjectTmpl = `Re: {{{ContractTitle}}}`

const connectBodyTmpl = `Hi {{#BrandName}}{{{BrandName}}}{{/BrandName}}{{^BrandName}}there{{/BrandName}},

Thanks for sending over "{{{ContractTitle}}}"{{#CampaignName}} for {{{CampaignName}}}{{/CampaignName}}. I'd love to connect and talk through the details before we move forward.

{{#InfluencerName}}Best,
{{{InfluencerName}}}{{/InfluencerName}}`

var (
	ConnectSubject = MustacheMust(connectSubjectTmpl)
	ConnectBody    = MustacheMust(connectBodyTmpl)
)

type Connect struct {
	BrandEmail     string
	BrandName      string
	ContractTitle  string
	CampaignName   string
	InfluencerName string
}

// ComposeURL builds the mailto: link offered after a connect response.
// It's empty when there's no usable brand email to write to.
func ComposeURL(c Connect) string {
	addr, err := mail.ParseAddress(c.BrandEmail)
	if err != nil {
		return ""
	}
	// mustache treats "" as present, so empty fields are left out entirely
	ctx := map[string]interface{}{}
	for k, v := range map[string]string{
		"BrandName":      c.BrandName,
		"ContractTitle":  c.ContractTitle,
		"CampaignName":   c.CampaignName,
		"InfluencerName": c.InfluencerName,
	} {
		if v != "" {
			ctx[k] = v
		}
	}
	subject := strings.TrimSpace(ConnectSubject.Render(ctx))
	body := strings.TrimSpace(ConnectBody.Render(ctx))

	return "mailto:" + url.PathEscape(addr.Address) + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
}

// mail clients want %20 rather than + for spaces
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
