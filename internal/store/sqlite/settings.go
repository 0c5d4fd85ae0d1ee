package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flarehq/flare/internal/domain"
)

// Settings are stored as one row per key so future keys can be added
// without a schema migration.

func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return domain.Settings{}, fmt.Errorf("scanning setting: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return domain.Settings{}, err
	}

	// Missing keys keep their defaults.
	set := domain.DefaultSettings()
	if v, ok := kv["useOrdering"]; ok {
		if p := domain.OrderingPolicy(v); p.Valid() {
			set.UseOrdering = p
		}
	}
	if v, ok := kv["dockerApps"]; ok {
		set.UseDockerDiscovery = v == "1"
	}
	if v, ok := kv["kubernetesApps"]; ok {
		set.UseKubernetesDiscovery = v == "1"
	}
	if v, ok := kv["unpinStoppedApps"]; ok {
		set.UnpinStoppedApps = v == "1"
	}
	if v, ok := kv["pinAppsByDefault"]; ok {
		set.PinAppsByDefault = v == "1"
	}
	if v, ok := kv["pinCategoriesByDefault"]; ok {
		set.PinCategoriesByDefault = v == "1"
	}
	return set, nil
}

func (s *Store) UpdateSettings(ctx context.Context, set domain.Settings) (domain.Settings, error) {
	if !set.UseOrdering.Valid() {
		return domain.Settings{}, fmt.Errorf("unknown ordering policy %q", set.UseOrdering)
	}

	kv := map[string]string{
		"useOrdering":            string(set.UseOrdering),
		"dockerApps":             boolValue(set.UseDockerDiscovery),
		"kubernetesApps":         boolValue(set.UseKubernetesDiscovery),
		"unpinStoppedApps":       boolValue(set.UnpinStoppedApps),
		"pinAppsByDefault":       boolValue(set.PinAppsByDefault),
		"pinCategoriesByDefault": boolValue(set.PinCategoriesByDefault),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for k, v := range kv {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO settings (key, value) VALUES (?, ?)
				 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
				return fmt.Errorf("saving setting %s: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return s.GetSettings(ctx)
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
