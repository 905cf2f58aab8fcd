package cmd

import (
	"io"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"openf1telemetry/pkg/openf1"
)

// describe turns a failure into a headline and troubleshooting hints.
func describe(err error) (string, []string) {
	switch openf1.Kind(err) {
	case openf1.KindConfiguration:
		return "Configuration problem", []string{
			"Set " + openf1.BaseURLKey + " in the environment or in a .env file",
			"Example: " + openf1.BaseURLKey + "=" + openf1.DefaultBaseURL,
		}
	case openf1.KindInvalidRequest:
		return "Invalid request", []string{
			"Run `openf1 endpoints` to see the available endpoints",
		}
	case openf1.KindTransport:
		var transErr *openf1.TransportError
		if errors.As(err, &transErr) && transErr.Timeout() {
			return "The OpenF1 service did not answer in time", []string{
				"Raise HTTP_TIMEOUT or try again in a few moments",
			}
		}
		return "Cannot reach the OpenF1 service", []string{
			"Check your internet connection",
			"Check that " + openf1.BaseURLKey + " points at the service",
		}
	case openf1.KindRemoteStatus:
		var statusErr *openf1.RemoteStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return "The service returned no data", []string{
				"Check the endpoint name and the query parameters",
				"Data for a live session may not be published yet",
			}
		}
		return "The OpenF1 service returned an error", []string{
			"The service may be under heavy load, please try again later",
		}
	case openf1.KindDecode:
		return "Unexpected response from the OpenF1 service", []string{
			"The service did not answer with a JSON array of records",
		}
	}
	return "Command failed", nil
}

func printError(w io.Writer, err error) {
	title, hints := describe(err)
	pterm.Error.WithWriter(w).Println(title)
	pterm.Fprintln(w, "  "+err.Error())
	for _, h := range hints {
		pterm.Fprintln(w, "  • "+h)
	}
}
