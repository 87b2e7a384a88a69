package validators

import "strings"

const cpfDigits = 11

// DigitsOnly remove pontuação de CPF, CNPJ e telefone.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCPF confere só o tamanho, já sem pontuação.
func IsCPF(digits string) bool {
	return len(digits) == cpfDigits && DigitsOnly(digits) == digits
}
