package vies

import (
	"encoding/xml"
	"strings"

	"vatchecker/internal/vat/providers"
)

const (
	soapEnvNS  = "http://schemas.xmlsoap.org/soap/envelope/"
	checkVatNS = "urn:ec.europa.eu:taxud:vies:services:checkVat:types"
)

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soapenv:Envelope"`
	SoapEnv string      `xml:"xmlns:soapenv,attr"`
	Types   string      `xml:"xmlns:urn,attr"`
	Body    requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	CheckVat checkVatRequest `xml:"urn:checkVat"`
}

type checkVatRequest struct {
	CountryCode string `xml:"urn:countryCode"`
	VATNumber   string `xml:"urn:vatNumber"`
}

// Response elements are matched by local name so namespace prefixes chosen
// by the server do not matter.
type responseEnvelope struct {
	Body struct {
		Response *checkVatResponse `xml:"checkVatResponse"`
		Fault    *soapFault        `xml:"Fault"`
	} `xml:"Body"`
}

type checkVatResponse struct {
	CountryCode string `xml:"countryCode"`
	VATNumber   string `xml:"vatNumber"`
	Valid       bool   `xml:"valid"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

func encodeRequest(countryCode, number string) ([]byte, error) {
	env := requestEnvelope{
		SoapEnv: soapEnvNS,
		Types:   checkVatNS,
		Body: requestBody{CheckVat: checkVatRequest{
			CountryCode: countryCode,
			VATNumber:   number,
		}},
	}
	out, err := xml.Marshal(env)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func decodeResponse(body []byte) (*checkVatResponse, *soapFault, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, nil, err
	}
	return env.Body.Response, env.Body.Fault, nil
}

// faultCategory maps VIES fault strings onto the provider taxonomy.
func faultCategory(f *soapFault) providers.ErrorCategory {
	s := strings.ToUpper(strings.TrimSpace(f.String))
	switch {
	case s == "INVALID_INPUT" || s == "INVALID_REQUESTER_INFO":
		return providers.ErrorBadData
	case s == "TIMEOUT":
		return providers.ErrorTimeout
	case strings.Contains(s, "MAX_CONCURRENT_REQ"):
		return providers.ErrorRateLimited
	default:
		// SERVICE_UNAVAILABLE, MS_UNAVAILABLE and anything undocumented
		return providers.ErrorProviderOutage
	}
}
