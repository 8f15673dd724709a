package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

type DB struct {
	conn *sql.DB
}

func DSN(host string, port int, user, password, dbname string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.DBName = dbname
	cfg.ParseTime = true
	cfg.Apply(mysql.Charset("utf8mb4", ""))
	return cfg.FormatDSN()
}

func New(host string, port int, user, password, dbname string) (*DB, error) {
	conn, err := sql.Open("mysql", DSN(host, port, user, password, dbname))
	if err != nil {
		return nil, err
	}

	// конвертер однопоточный
	conn.SetMaxOpenConns(2)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS converted_utterances (
	id             BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id         CHAR(36)      NOT NULL,
	corpus_format  VARCHAR(32)   NOT NULL,
	split          VARCHAR(64)   NOT NULL,
	basename       VARCHAR(255)  NOT NULL,
	speaker_id     VARCHAR(128)  NOT NULL,
	name           VARCHAR(255)  NOT NULL,
	source_key     VARCHAR(1024) NOT NULL,
	text_path      VARCHAR(1024) NOT NULL,
	audio_path     VARCHAR(1024) NULL,
	audio_hash     CHAR(32)      NULL,
	audio_bytes    BIGINT        NULL,
	duration_sec   DOUBLE        NULL,
	sample_rate    INT           NULL,
	channels       INT           NULL,
	metadata_json  JSON          NULL,
	transcript     TEXT          NOT NULL,
	created_at     TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uq_split_basename (corpus_format, split, basename),
	KEY idx_run (run_id),
	KEY idx_audio_hash (audio_hash)
) CHARACTER SET utf8mb4`

// EnsureSchema creates the catalog table if it does not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
