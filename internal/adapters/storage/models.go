package storage

import "time"

// SourceModel is the GORM model for sources table
type SourceModel struct {
	CreatedAt    time.Time
	Key          string     `gorm:"column:source_key;primaryKey"`
	LastLive     bool       `gorm:"not null;default:false"`
	LastPolledAt *time.Time `gorm:"default:null"`
	UpdatedAt    time.Time
	URL          string     `gorm:"column:url;not null"`
	WatchEnabled bool       `gorm:"not null;default:false;index:idx_watch_enabled"`
}

// TableName specifies the table name for GORM
func (SourceModel) TableName() string { return "sources" }

// SessionModel is the GORM model for the recording session archive
type SessionModel struct {
	BytesWritten int64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	EndedAt      *time.Time `gorm:"default:null"`
	Error        string     `gorm:"not null;default:''"`
	Escalated    bool       `gorm:"not null;default:false"`
	ExitCode     *int       `gorm:"default:null"`
	ID           string     `gorm:"primaryKey"`
	MediaURL     string     `gorm:"column:media_url;not null;default:''"`
	OutputPath   string     `gorm:"not null"`
	SourceKey    string     `gorm:"not null;index:idx_session_source"`
	StartedAt    time.Time  `gorm:"not null;index:idx_session_started"`
	Termination  string     `gorm:"not null;default:'none'"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }
