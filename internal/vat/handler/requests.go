package handler

import (
	"encoding/json"
	"net/url"
	"strings"

	id "vatchecker/pkg/domain"
)

// ValidateRequest is the storefront's ajax validation call. Both JSON and
// form bodies are accepted; id_country may be a JSON number or string.
type ValidateRequest struct {
	VATNumber string      `json:"vat_number"`
	CountryID json.Number `json:"id_country"`
	Company   string      `json:"company"`
	Token     string      `json:"token"`
	// LegacyToken is the field name older storefront scripts post.
	LegacyToken string `json:"vatchecker"`

	countryID id.CountryID
}

func (r *ValidateRequest) BindForm(values url.Values) {
	r.VATNumber = values.Get("vat_number")
	r.CountryID = json.Number(values.Get("id_country"))
	r.Company = values.Get("company")
	r.Token = values.Get("token")
	r.LegacyToken = values.Get("vatchecker")
}

func (r *ValidateRequest) Validate() error {
	r.VATNumber = strings.TrimSpace(r.VATNumber)
	r.Company = strings.TrimSpace(r.Company)
	countryID, err := id.ParseCountryID(strings.TrimSpace(r.CountryID.String()))
	if err != nil {
		return err
	}
	r.countryID = countryID
	return nil
}

// FormToken returns whichever token field the client sent.
func (r *ValidateRequest) FormToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.LegacyToken
}
