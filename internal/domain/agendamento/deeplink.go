package agendamento

import (
	"net/url"
	"strconv"
	"strings"
)

// DeepLink monta a URL que o app do prestador abre ao ler o QR.
func DeepLink(base string, id uint, p Phase, token string) string {
	q := url.Values{}
	q.Set("phase", string(p))
	q.Set("token", token)

	return strings.TrimRight(base, "/") +
		"/agendamento/" + strconv.FormatUint(uint64(id), 10) +
		"/scanner?" + q.Encode()
}
