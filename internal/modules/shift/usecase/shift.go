package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"leadtrack/internal/modules/shift/domain"
	"leadtrack/internal/modules/shift/dto"
	shiftin "leadtrack/internal/modules/shift/port/in"
	shiftout "leadtrack/internal/modules/shift/port/out"
	"leadtrack/internal/modules/shift/service"
	apperrors "leadtrack/internal/platform/errors"
)

var _ shiftin.Usecase = (*Manager)(nil)

// Manager owns the shift lifecycle of one workspace: the active-session
// pointer, the in-memory history and the start/end/delete transitions.
//
// Every mutation is applied in two phases. The next state is computed and
// installed in memory, then persisted; when the store rejects the write the
// captured previous state is put back before the error is returned. mu is held
// across the whole sequence so check-then-act on the active pointer cannot
// interleave.
type Manager struct {
	svc      *service.SessionService
	catalog  shiftout.RecordCatalog
	store    shiftout.SessionStore
	exporter shiftout.SessionExporter
	notifier shiftout.ChangeNotifier
	log      zerolog.Logger

	mu       sync.Mutex
	history  []domain.Session
	activeID string
}

func NewManager(svc *service.SessionService, catalog shiftout.RecordCatalog, store shiftout.SessionStore, exporter shiftout.SessionExporter, notifier shiftout.ChangeNotifier, log zerolog.Logger) *Manager {
	return &Manager{svc: svc, catalog: catalog, store: store, exporter: exporter, notifier: notifier, log: log}
}

// Load replaces the in-memory history with the persisted sessions. The list
// is read under mu so a reload cannot drop a mutation that lands mid-read.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions, err := m.store.List(ctx)
	if err != nil {
		return persistenceError("load sessions", err)
	}

	history := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		history = append(history, s.Clone())
	}
	sortHistory(history)

	activeID := ""
	for _, s := range history {
		if !s.IsActive {
			continue
		}
		if activeID == "" {
			activeID = s.ID
			continue
		}
		m.log.Warn().Str("session_id", s.ID).Str("kept", activeID).Msg("more than one active session in store")
	}
	m.history = history
	m.activeID = activeID
	m.log.Debug().Int("sessions", len(history)).Str("active", activeID).Msg("shift history loaded")
	return nil
}

// Watch reloads history on every outside write to the session store until
// ctx is done, so sessions started or ended by another process are seen.
func (m *Manager) Watch(ctx context.Context) error {
	if m.notifier == nil {
		<-ctx.Done()
		return nil
	}
	return m.notifier.Watch(ctx, func() {
		if err := m.Load(ctx); err != nil {
			m.log.Warn().Err(err).Msg("shift history reload failed")
		}
	})
}

func (m *Manager) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.snapshot()
	session, err := m.svc.Begin(input.OperatorName, input.LoginTime, entry)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if m.activeID != "" {
		return dto.SessionOutput{}, apperrors.ErrSessionAlreadyActive
	}

	prevHistory, prevActive := m.history, m.activeID
	next := make([]domain.Session, 0, len(prevHistory)+1)
	next = append(next, session)
	next = append(next, prevHistory...)
	sortHistory(next)
	m.history, m.activeID = next, session.ID

	if err := m.store.Upsert(ctx, session); err != nil {
		m.history, m.activeID = prevHistory, prevActive
		m.log.Error().Err(err).Str("session_id", session.ID).Msg("start rolled back")
		return dto.SessionOutput{}, persistenceError("save session", err)
	}
	m.log.Info().
		Str("session_id", session.ID).
		Str("operator", session.OperatorName).
		Str("login", session.LoginTime).
		Int("leads", domain.Total(session.EntrySnapshot)).
		Msg("session started")
	return toOutput(session), nil
}

func (m *Manager) PreviewEnd(_ context.Context, input dto.PreviewInput) (dto.SessionOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return dto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	preview, err := m.svc.Finish(m.history[idx], input.LogoutTime, m.snapshot())
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(preview), nil
}

func (m *Manager) End(ctx context.Context, input dto.EndInput) (dto.SessionOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := domain.ValidateTimeOfDay(input.LogoutTime); err != nil {
		return dto.SessionOutput{}, err
	}
	sessionID := input.SessionID
	if sessionID == "" {
		if m.activeID == "" {
			return dto.SessionOutput{}, apperrors.ErrNoActiveSession
		}
		sessionID = m.activeID
	}
	idx := m.indexOf(sessionID)
	if idx < 0 {
		return dto.SessionOutput{}, fmt.Errorf("%w: %s", apperrors.ErrSessionNotFound, sessionID)
	}
	prev := m.history[idx]
	if !prev.IsActive {
		return dto.SessionOutput{}, fmt.Errorf("%w: %s", apperrors.ErrSessionNotActive, sessionID)
	}

	ended, err := m.svc.Finish(prev, input.LogoutTime, m.snapshot())
	if err != nil {
		return dto.SessionOutput{}, err
	}
	prevActive := m.activeID
	m.history[idx] = ended
	if sessionID == m.activeID {
		m.activeID = ""
	}

	if err := m.store.Upsert(ctx, ended); err != nil {
		m.history[idx] = prev
		m.activeID = prevActive
		m.log.Error().Err(err).Str("session_id", prev.ID).Msg("end rolled back, session still active")
		return dto.SessionOutput{}, persistenceError("save session", err)
	}

	out := toOutput(ended)
	if m.exporter != nil {
		path, err := m.exporter.Export(ctx, ended)
		if err != nil {
			m.log.Warn().Err(err).Str("session_id", ended.ID).Msg("session note not written")
		}
		out.NotePath = path
	}
	m.log.Info().
		Str("session_id", ended.ID).
		Str("operator", ended.OperatorName).
		Str("logout", ended.LogoutTime).
		Int("estimated_calls", ended.EstimatedCallCount).
		Msg("session ended")
	return out, nil
}

func (m *Manager) Delete(ctx context.Context, input dto.DeleteInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(input.SessionID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrSessionNotFound, input.SessionID)
	}
	if m.history[idx].IsActive {
		return apperrors.ErrCannotDeleteActiveSession
	}

	prevHistory := m.history
	next := make([]domain.Session, 0, len(prevHistory)-1)
	next = append(next, prevHistory[:idx]...)
	next = append(next, prevHistory[idx+1:]...)
	m.history = next

	if err := m.store.Delete(ctx, input.SessionID); err != nil {
		m.history = prevHistory
		m.log.Error().Err(err).Str("session_id", input.SessionID).Msg("delete rolled back")
		return persistenceError("delete session", err)
	}
	m.log.Info().Str("session_id", input.SessionID).Msg("session deleted")
	return nil
}

func (m *Manager) CurrentSnapshot(_ context.Context) ([]dto.SnapshotEntry, error) {
	return toEntries(m.snapshot()), nil
}

func (m *Manager) Status(_ context.Context) (dto.StatusOutput, error) {
	current := m.snapshot()
	out := dto.StatusOutput{Current: toEntries(current)}

	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return out, nil
	}
	active := m.history[idx]
	out.HasActive = true
	out.Active = toOutput(active)
	out.Changes = toChanges(domain.Compare(active.EntrySnapshot, current))
	return out, nil
}

func (m *Manager) History(_ context.Context) ([]dto.SessionOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dto.SessionOutput, 0, len(m.history))
	for _, s := range m.history {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (m *Manager) GetActive(_ context.Context) (dto.SessionOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(m.activeID)
	if idx < 0 {
		return dto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toOutput(m.history[idx]), nil
}

func (m *Manager) snapshot() []domain.StatusSnapshot {
	return domain.Snapshot(m.catalog.ListRecords(), m.catalog.ListStatusCategories())
}

func (m *Manager) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range m.history {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// sortHistory orders by date, most recent first; sessions on the same date
// fall back to creation time.
func sortHistory(history []domain.Session) {
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Date != history[j].Date {
			return history[i].Date > history[j].Date
		}
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrPersistence, op, err)
}

func toOutput(s domain.Session) dto.SessionOutput {
	out := dto.SessionOutput{
		ID:            s.ID,
		OperatorName:  s.OperatorName,
		Date:          s.Date,
		LoginTime:     s.LoginTime,
		LogoutTime:    s.LogoutTime,
		EntrySnapshot: toEntries(s.EntrySnapshot),
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
	if s.IsActive {
		return out
	}
	out.ExitSnapshot = toEntries(s.ExitSnapshot)
	out.Conversions = make(map[string]int, len(s.Conversions))
	for k, v := range s.Conversions {
		out.Conversions[k] = v
	}
	out.EstimatedCallCount = s.EstimatedCallCount
	out.Changes = toChanges(domain.Compare(s.EntrySnapshot, s.ExitSnapshot))
	return out
}

func toEntries(snapshot []domain.StatusSnapshot) []dto.SnapshotEntry {
	out := make([]dto.SnapshotEntry, 0, len(snapshot))
	for _, s := range snapshot {
		out = append(out, dto.SnapshotEntry{Status: s.Status, Count: s.Count})
	}
	return out
}

func toChanges(rows []domain.StatusChange) []dto.ChangeOutput {
	out := make([]dto.ChangeOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ChangeOutput{
			Status:  r.Status,
			Entry:   r.Entry,
			Exit:    r.Exit,
			Delta:   r.Delta,
			InEntry: r.InEntry,
			InExit:  r.InExit,
		})
	}
	return out
}
