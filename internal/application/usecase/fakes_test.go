package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/koerner360/koerner360-api/internal/application/ports"
	"github.com/koerner360/koerner360-api/internal/domain"
	"github.com/koerner360/koerner360-api/internal/domain/entity"
	"github.com/koerner360/koerner360-api/internal/domain/permission"
	"github.com/koerner360/koerner360-api/internal/domain/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// memStore guarda cópias das entidades; leituras também devolvem cópias,
// então alterações fora de uma transação não vazam para o "banco".
type memStore struct {
	mu         sync.Mutex
	users      map[string]entity.User
	atendentes map[string]entity.Atendente
	avaliacoes map[string]entity.Avaliacao
	feedbacks  map[string]entity.Feedback
	changelogs map[string]entity.Changelog
	audits     []entity.AuditLog

	failAudit error
}

type memSnapshot struct {
	users      map[string]entity.User
	atendentes map[string]entity.Atendente
	avaliacoes map[string]entity.Avaliacao
	feedbacks  map[string]entity.Feedback
	changelogs map[string]entity.Changelog
	audits     []entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]entity.User{},
		atendentes: map[string]entity.Atendente{},
		avaliacoes: map[string]entity.Avaliacao{},
		feedbacks:  map[string]entity.Feedback{},
		changelogs: map[string]entity.Changelog{},
	}
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		users:      copyMap(s.users),
		atendentes: copyMap(s.atendentes),
		avaliacoes: copyMap(s.avaliacoes),
		feedbacks:  copyMap(s.feedbacks),
		changelogs: copyMap(s.changelogs),
		audits:     append([]entity.AuditLog(nil), s.audits...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.atendentes = snap.atendentes
	s.avaliacoes = snap.avaliacoes
	s.feedbacks = snap.feedbacks
	s.changelogs = snap.changelogs
	s.audits = snap.audits
}

func (s *memStore) repos() ports.TxRepos {
	return ports.TxRepos{
		Users:      memUsers{s},
		Atendentes: memAtendentes{s},
		Avaliacoes: memAvaliacoes{s},
		Feedbacks:  memFeedbacks{s},
		Changelogs: memChangelogs{s},
		AuditLogs:  memAudits{s},
	}
}

func (s *memStore) auditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditLog(nil), s.audits...)
}

// seed* gravam direto no store, sem auditoria.

func (s *memStore) seedUser(id, role string, supervisorID *string) entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	u := entity.User{
		ID:           id,
		Name:         "Usuário " + id,
		Email:        id + "@koerner.test",
		PasswordHash: string(hash),
		Role:         role,
		SupervisorID: supervisorID,
		Active:       true,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
	s.mu.Lock()
	s.users[id] = u
	s.mu.Unlock()
	return u
}

func (s *memStore) seedAtendente(id string, userID *string, status string) entity.Atendente {
	a := entity.Atendente{
		ID:            id,
		Name:          "Atendente " + id,
		Email:         id + "@atendentes.test",
		CPF:           cpfFor(id),
		Cargo:         "Porteiro",
		Setor:         "Portaria",
		AdmissionDate: fixedNow.AddDate(-1, 0, 0),
		Status:        status,
		UserID:        userID,
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}
	s.mu.Lock()
	s.atendentes[id] = a
	s.mu.Unlock()
	return a
}

func cpfFor(id string) string {
	d := onlyDigits(id)
	return (strings.Repeat("0", 11) + d)[len(d):]
}

func strPtr(s string) *string { return &s }

// supervisorOf devolve o supervisor do usuário vinculado; chamar com mu travado.
func (s *memStore) supervisorOf(userID *string) *string {
	if userID == nil {
		return nil
	}
	if u, ok := s.users[*userID]; ok {
		return u.SupervisorID
	}
	return nil
}

func inScope(sc repository.Scope, ownerID, supervisorID string) bool {
	switch {
	case sc.Unrestricted():
		return true
	case sc.SupervisorID != "":
		return supervisorID == sc.SupervisorID || ownerID == sc.SupervisorID
	}
	return ownerID == sc.UserID
}

func paginate[T any](items []T, p repository.Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

// memTx executa fn sobre o store e desfaz tudo se fn falhar.
type memTx struct{ s *memStore }

func (t memTx) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := t.s.snapshot()
	if err := fn(t.s.repos()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	u.UpdatedAt = at
	r.s.users[id] = u
	return nil
}

func (r memUsers) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		u := u
		if !inScope(f.Scope, u.ID, u.SupervisorIDValue()) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page), len(out), nil
}

type memAtendentes struct{ s *memStore }

func (r memAtendentes) read(a entity.Atendente) *entity.Atendente {
	a.SupervisorID = r.s.supervisorOf(a.UserID)
	return &a
}

func (r memAtendentes) Create(_ context.Context, a *entity.Atendente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.atendentes {
		if other.CPF == a.CPF {
			return domain.ErrCPFAlreadyExists
		}
	}
	r.s.atendentes[a.ID] = *a
	return nil
}

func (r memAtendentes) GetByID(_ context.Context, id string) (*entity.Atendente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.atendentes[id]
	if !ok {
		return nil, nil
	}
	return r.read(a), nil
}

func (r memAtendentes) GetByUserID(_ context.Context, userID string) (*entity.Atendente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.atendentes {
		if a.UserID != nil && *a.UserID == userID {
			return r.read(a), nil
		}
	}
	return nil, nil
}

func (r memAtendentes) Update(_ context.Context, a *entity.Atendente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.atendentes[a.ID]; !ok {
		return domain.ErrAtendenteNotFound
	}
	stored := *a
	stored.SupervisorID = nil
	r.s.atendentes[a.ID] = stored
	return nil
}

func (r memAtendentes) LinkUser(_ context.Context, atendenteID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.atendentes[atendenteID]
	if !ok {
		return domain.ErrAtendenteNotFound
	}
	a.UserID = &userID
	r.s.atendentes[atendenteID] = a
	return nil
}

func (r memAtendentes) List(_ context.Context, f repository.AtendenteFilter) ([]*entity.Atendente, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Atendente
	for _, a := range r.s.atendentes {
		got := r.read(a)
		if !inScope(f.Scope, got.OwnerID(), got.SupervisorIDValue()) {
			continue
		}
		if f.Status != "" && got.Status != f.Status {
			continue
		}
		out = append(out, got)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Page), len(out), nil
}

type memAvaliacoes struct{ s *memStore }

func (r memAvaliacoes) Create(_ context.Context, a *entity.Avaliacao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.avaliacoes {
		if other.AtendenteID == a.AtendenteID && other.AvaliadorID == a.AvaliadorID && other.Periodo == a.Periodo {
			return domain.ErrDuplicateAvaliacao
		}
	}
	r.s.avaliacoes[a.ID] = *a
	return nil
}

func (r memAvaliacoes) GetByID(_ context.Context, id string) (*entity.Avaliacao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.avaliacoes[id]
	if !ok {
		return nil, nil
	}
	if at, ok := r.s.atendentes[a.AtendenteID]; ok {
		a.AtendenteName = at.Name
		a.AtendenteUserID = at.UserID
		a.AtendenteSupervisor = r.s.supervisorOf(at.UserID)
	}
	return &a, nil
}

func (r memAvaliacoes) Update(_ context.Context, a *entity.Avaliacao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.avaliacoes[a.ID]; !ok {
		return domain.ErrAvaliacaoNotFound
	}
	r.s.avaliacoes[a.ID] = *a
	return nil
}

func (r memAvaliacoes) List(_ context.Context, f repository.AvaliacaoFilter) ([]*entity.Avaliacao, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Avaliacao
	for _, a := range r.s.avaliacoes {
		a := a
		if f.AtendenteID != "" && a.AtendenteID != f.AtendenteID {
			continue
		}
		if f.Periodo != "" && a.Periodo != f.Periodo {
			continue
		}
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page), len(out), nil
}

type memFeedbacks struct{ s *memStore }

func (r memFeedbacks) Create(_ context.Context, f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.feedbacks[f.ID] = *f
	return nil
}

func (r memFeedbacks) GetByID(_ context.Context, id string) (*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.feedbacks[id]
	if !ok {
		return nil, nil
	}
	if at, ok := r.s.atendentes[f.DestinatarioID]; ok {
		f.DestinatarioName = at.Name
		f.DestinatarioUserID = at.UserID
		f.DestinatarioSupervisor = r.s.supervisorOf(at.UserID)
	}
	return &f, nil
}

func (r memFeedbacks) Update(_ context.Context, f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedbacks[f.ID]; !ok {
		return domain.ErrFeedbackNotFound
	}
	r.s.feedbacks[f.ID] = *f
	return nil
}

func (r memFeedbacks) List(_ context.Context, f repository.FeedbackFilter) ([]*entity.Feedback, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Feedback
	for _, fb := range r.s.feedbacks {
		fb := fb
		if f.Status != "" && fb.Status != f.Status {
			continue
		}
		out = append(out, &fb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page), len(out), nil
}

type memChangelogs struct{ s *memStore }

func (r memChangelogs) Create(_ context.Context, c *entity.Changelog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.changelogs {
		if other.Version == c.Version {
			return domain.ErrVersionExists
		}
	}
	stored := *c
	stored.Items = append([]entity.ChangelogItem(nil), c.Items...)
	r.s.changelogs[c.ID] = stored
	return nil
}

func (r memChangelogs) GetByID(_ context.Context, id string) (*entity.Changelog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.changelogs[id]
	if !ok {
		return nil, nil
	}
	c.Items = append([]entity.ChangelogItem(nil), c.Items...)
	return &c, nil
}

func (r memChangelogs) Update(_ context.Context, c *entity.Changelog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.changelogs[c.ID]
	if !ok {
		return domain.ErrChangelogNotFound
	}
	items := stored.Items
	stored = *c
	stored.Items = items
	r.s.changelogs[c.ID] = stored
	return nil
}

func (r memChangelogs) ReplaceItems(_ context.Context, changelogID string, items []entity.ChangelogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.changelogs[changelogID]
	if !ok {
		return domain.ErrChangelogNotFound
	}
	c.Items = append([]entity.ChangelogItem(nil), items...)
	r.s.changelogs[changelogID] = c
	return nil
}

func (r memChangelogs) List(_ context.Context, onlyPublished bool, p repository.Page) ([]*entity.Changelog, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Changelog
	for _, c := range r.s.changelogs {
		c := c
		if onlyPublished && !c.Published {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReleaseDate.After(out[j].ReleaseDate) })
	return paginate(out, p), len(out), nil
}

type memAudits struct{ s *memStore }

func (r memAudits) Create(_ context.Context, l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAudit != nil {
		return r.s.failAudit
	}
	r.s.audits = append(r.s.audits, *l)
	return nil
}

func (r memAudits) List(_ context.Context, f repository.AuditLogFilter) ([]*entity.AuditLog, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLog
	for _, l := range r.s.audits {
		l := l
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, &l)
	}
	return paginate(out, f.Page), len(out), nil
}

// fixture monta todos os casos de uso sobre um único store.
type fixture struct {
	store      *memStore
	users      *UserUseCase
	atendentes *AtendenteUseCase
	avaliacoes *AvaliacaoUseCase
	feedbacks  *FeedbackUseCase
	changelogs *ChangelogUseCase
	audit      *AuditUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	r := s.repos()
	tx := memTx{s}

	users := NewUserUseCase(r.Users, r.Atendentes, tx)
	users.now = fixedClock
	users.hashCost = bcrypt.MinCost
	atendentes := NewAtendenteUseCase(r.Atendentes, r.Users, tx)
	atendentes.now = fixedClock
	avaliacoes := NewAvaliacaoUseCase(r.Avaliacoes, r.Atendentes, tx)
	avaliacoes.now = fixedClock
	feedbacks := NewFeedbackUseCase(r.Feedbacks, r.Atendentes, tx)
	feedbacks.now = fixedClock
	changelogs := NewChangelogUseCase(r.Changelogs, tx)
	changelogs.now = fixedClock
	audit := NewAuditUseCase(r.AuditLogs)
	audit.now = fixedClock

	return &fixture{
		store:      s,
		users:      users,
		atendentes: atendentes,
		avaliacoes: avaliacoes,
		feedbacks:  feedbacks,
		changelogs: changelogs,
		audit:      audit,
	}
}

// Atores e equipes usados na maioria dos testes:
// sup-1 supervisiona user-1 (vinculado a at-1); sup-2 supervisiona user-2 (at-2).
var (
	admin     = permission.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	sup1      = permission.Actor{UserID: "sup-1", Role: entity.RoleSupervisor}
	sup2      = permission.Actor{UserID: "sup-2", Role: entity.RoleSupervisor}
	consultor = permission.Actor{UserID: "cons-1", Role: entity.RoleConsultor}
	user1     = permission.Actor{UserID: "user-1", Role: entity.RoleAtendente}
	user2     = permission.Actor{UserID: "user-2", Role: entity.RoleAtendente}
	anonimo   = permission.Actor{}
)

func (f *fixture) seedTeams() {
	f.store.seedUser(admin.UserID, entity.RoleAdmin, nil)
	f.store.seedUser(sup1.UserID, entity.RoleSupervisor, nil)
	f.store.seedUser(sup2.UserID, entity.RoleSupervisor, nil)
	f.store.seedUser(consultor.UserID, entity.RoleConsultor, nil)
	f.store.seedUser(user1.UserID, entity.RoleAtendente, strPtr(sup1.UserID))
	f.store.seedUser(user2.UserID, entity.RoleAtendente, strPtr(sup2.UserID))
	f.store.seedAtendente("at-1", strPtr(user1.UserID), entity.AtendenteAtivo)
	f.store.seedAtendente("at-2", strPtr(user2.UserID), entity.AtendenteAtivo)
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var v *domain.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("esperava ValidationError, veio %v", err)
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func usersAll() repository.UserFilter { return repository.UserFilter{} }

func atendentesAll() repository.AtendenteFilter { return repository.AtendenteFilter{} }

func actorByName(name string) permission.Actor {
	switch name {
	case "admin":
		return admin
	case "sup1":
		return sup1
	case "sup2":
		return sup2
	case "consultor":
		return consultor
	case "user1":
		return user1
	case "user2":
		return user2
	}
	return permission.Actor{}
}
