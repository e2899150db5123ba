package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// isUniqueViolation verifica se o erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// uniqueViolation traduz a violação de unicidade no erro de domínio cujo
// trecho aparece no nome da constraint; fallback quando nenhum casa.
func uniqueViolation(err error, byConstraint map[string]error, fallback error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}
	name := strings.ToLower(pgErr.ConstraintName)
	for fragment, domainErr := range byConstraint {
		if strings.Contains(name, fragment) {
			return domainErr
		}
	}
	return fallback
}

// whereBuilder monta cláusulas WHERE com placeholders numerados.
type whereBuilder struct {
	conds []string
	args  []any
}

// add registra uma condição; cada %[1]d em cond vira o placeholder do argumento.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// raw registra uma condição sem argumentos.
func (w *whereBuilder) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page acrescenta LIMIT/OFFSET e devolve o SQL e os argumentos finais.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
