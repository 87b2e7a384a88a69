package agendamento

import (
	"strconv"

	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dto"
)

func uintStr(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func strPtr(s string) *string { return &s }

type identityPair struct {
	cli   identity.Actor
	prest identity.Actor
}

func idsOf(items []dto.AgendamentoDTO) []uint {
	out := make([]uint, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
