// internal/storage/jsonstore.go
//
// 情境檔與匯出檔的 JSON 讀寫。
// 寫入採「原子寫入」：先寫 .tmp 檔，再以 rename() 取代原檔。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadScenario 讀取並解析情境檔。
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return s, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if s.Meta.Version > Version {
		return s, fmt.Errorf("scenario %s has version %d, newest supported is %d", path, s.Meta.Version, Version)
	}
	return s, nil
}

// SaveScenario 將情境寫入 path。
func SaveScenario(path string, s Scenario) error {
	s.Meta.Storage = KindScenario
	s.Meta.Version = Version
	s.Meta.Timestamp = time.Now().UTC()
	return writeAtomic(path, s)
}

// SaveExport 將 payload 與備註一併寫入 path。
func SaveExport(path, note string, payload any) error {
	return writeAtomic(path, Export{
		Meta: Meta{
			Storage:   KindExport,
			Version:   Version,
			Timestamp: time.Now().UTC(),
			Note:      note,
		},
		Payload: payload,
	})
}

func writeAtomic(path string, v any) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// 縮排輸出，方便人工檢視
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
