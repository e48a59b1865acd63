package service

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
)

// DefaultSound звук, используемый когда идентификатор неизвестен
const DefaultSound = "gentle-chime"

// Sound встроенный звук напоминания
type Sound struct {
	ID              string
	Name            string
	AssetRef        string
	NominalDuration time.Duration
}

// SoundCatalog статический реестр встроенных звуков
type SoundCatalog struct {
	sounds map[string]Sound
}

// NewSoundCatalog создаёт каталог встроенных звуков, файлы лежат в dir
func NewSoundCatalog(dir string) *SoundCatalog {
	builtin := []Sound{
		{ID: "gentle-chime", Name: "Мягкий перезвон", NominalDuration: 4 * time.Second},
		{ID: "focus-bell", Name: "Колокол фокуса", NominalDuration: 3 * time.Second},
		{ID: "urgent-alert", Name: "Срочный сигнал", NominalDuration: 2 * time.Second},
		{ID: "soft-piano", Name: "Фортепиано", NominalDuration: 8 * time.Second},
		{ID: "classic-bell", Name: "Классический звонок", NominalDuration: 5 * time.Second},
	}

	c := &SoundCatalog{sounds: make(map[string]Sound, len(builtin))}
	for _, s := range builtin {
		s.AssetRef = filepath.Join(dir, s.ID+".wav")
		c.sounds[s.ID] = s
	}
	return c
}

// Resolve возвращает звук по идентификатору
func (c *SoundCatalog) Resolve(id string) (Sound, error) {
	s, ok := c.sounds[id]
	if !ok {
		return Sound{}, fmt.Errorf("resolve sound %q: %w", id, model.ErrUnknownSound)
	}
	return s, nil
}

// Sounds возвращает все звуки, отсортированные по ID
func (c *SoundCatalog) Sounds() []Sound {
	out := make([]Sound, 0, len(c.sounds))
	for _, s := range c.sounds {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
