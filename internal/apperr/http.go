package apperr

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WriteHTTP answers the request with the status and public message of err. Unexpected
// errors are logged with op, expected ones only traced.
func WriteHTTP(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Tracef("%s: %s", op, err)
	}
	http.Error(w, PublicMessage(err), status)
}
