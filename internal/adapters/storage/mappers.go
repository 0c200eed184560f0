package storage

import (
	"github.com/plexlevi/webcorder/internal/domain"
)

// sourceModelToDomain converts a SourceModel (GORM) to domain.Source
func sourceModelToDomain(m SourceModel) domain.Source {
	s := domain.Source{
		CreatedAt:    m.CreatedAt,
		Key:          m.Key,
		LastLive:     m.LastLive,
		URL:          m.URL,
		WatchEnabled: m.WatchEnabled,
	}
	if m.LastPolledAt != nil {
		s.LastPolledAt = *m.LastPolledAt
	}
	return s
}

// domainToSourceModel converts a domain.Source to SourceModel (GORM)
func domainToSourceModel(s domain.Source) SourceModel {
	m := SourceModel{
		CreatedAt:    s.CreatedAt,
		Key:          s.Key,
		LastLive:     s.LastLive,
		URL:          s.URL,
		WatchEnabled: s.WatchEnabled,
	}
	if !s.LastPolledAt.IsZero() {
		polled := s.LastPolledAt
		m.LastPolledAt = &polled
	}
	return m
}

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session
func sessionModelToDomain(m SessionModel) domain.Session {
	return domain.Session{
		BytesWritten: m.BytesWritten,
		EndedAt:      m.EndedAt,
		Error:        m.Error,
		Escalated:    m.Escalated,
		ExitCode:     m.ExitCode,
		ID:           m.ID,
		MediaURL:     m.MediaURL,
		OutputPath:   m.OutputPath,
		SourceKey:    m.SourceKey,
		StartedAt:    m.StartedAt,
		Termination:  domain.TerminationReason(m.Termination),
	}
}

// domainToSessionModel converts a domain.Session to SessionModel (GORM)
func domainToSessionModel(s domain.Session) SessionModel {
	termination := s.Termination
	if termination == "" {
		termination = domain.TerminationNone
	}
	return SessionModel{
		BytesWritten: s.BytesWritten,
		EndedAt:      s.EndedAt,
		Error:        s.Error,
		Escalated:    s.Escalated,
		ExitCode:     s.ExitCode,
		ID:           s.ID,
		MediaURL:     s.MediaURL,
		OutputPath:   s.OutputPath,
		SourceKey:    s.SourceKey,
		StartedAt:    s.StartedAt,
		Termination:  string(termination),
	}
}
