// internal/core/domain/result.go
package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CanonicalItem es un subdominio descubierto, normalizado y deduplicado,
// con su conjunto de procedencia (qué herramientas lo reportaron).
type CanonicalItem struct {
	// Key nombre canónico (minúsculas, sin espacios, dentro del scope)
	Key string

	// sources conjunto de identificadores de herramienta
	sources map[string]struct{}
}

// newCanonicalItem crea un item con procedencia vacía.
func newCanonicalItem(key string) *CanonicalItem {
	return &CanonicalItem{
		Key:     key,
		sources: make(map[string]struct{}),
	}
}

// AddSource une una herramienta al conjunto de procedencia (idempotente).
func (c *CanonicalItem) AddSource(tool string) {
	c.sources[tool] = struct{}{}
}

// Confidence es la cardinalidad del conjunto de procedencia.
// Siempre se cumple Confidence() == len(Sources()).
func (c *CanonicalItem) Confidence() int {
	return len(c.sources)
}

// Sources retorna la procedencia ordenada alfabéticamente.
func (c *CanonicalItem) Sources() []string {
	out := make([]string, 0, len(c.sources))
	for s := range c.sources {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasSource verifica pertenencia de una herramienta a la procedencia.
func (c *CanonicalItem) HasSource(tool string) bool {
	_, ok := c.sources[tool]
	return ok
}

// EnumStats son las estadísticas derivadas de un run de enumeración.
type EnumStats struct {
	// RawLines total de líneas crudas recibidas antes de deduplicar
	RawLines int

	// Unique total de claves canónicas tras deduplicar
	Unique int

	// Corroborated claves con confianza >= 2 (corroboración entre herramientas)
	Corroborated int

	// NewlyAdded dominios nuevos insertados en el store en este run
	NewlyAdded int

	// KnownBefore dominios ya presentes en el store antes del run
	KnownBefore int
}

// Warning es una advertencia no fatal registrada durante el run.
type Warning struct {
	Source    string
	Message   string
	Timestamp time.Time
}

// EnumResult es el resultado completo de un run de enumeración.
// El agregador lo construye y lo entrega al caller como valor inmutable.
type EnumResult struct {
	// RunID identificador único del run
	RunID string

	// Target objetivo de la enumeración
	Target Target

	// items mapping clave canónica -> item con procedencia
	items map[string]*CanonicalItem

	// Stats estadísticas del run
	Stats EnumStats

	// ToolOutcomes desenlace por herramienta invocada
	ToolOutcomes map[string]Outcome

	// Warnings advertencias no críticas del run
	Warnings []Warning

	// StartTime / EndTime / Duration ventana temporal del run
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewEnumResult crea un resultado vacío para un target.
func NewEnumResult(target Target) *EnumResult {
	return &EnumResult{
		RunID:        uuid.NewString(),
		Target:       target,
		items:        make(map[string]*CanonicalItem),
		ToolOutcomes: make(map[string]Outcome),
		Warnings:     []Warning{},
		StartTime:    time.Now(),
	}
}

// Add une la herramienta tool a la procedencia de key, creando el item si no
// existía. La confianza se deriva siempre del tamaño del conjunto.
func (r *EnumResult) Add(key, tool string) {
	item, ok := r.items[key]
	if !ok {
		item = newCanonicalItem(key)
		r.items[key] = item
	}
	item.AddSource(tool)
}

// Item retorna el item de una clave, o nil si no existe.
func (r *EnumResult) Item(key string) *CanonicalItem {
	return r.items[key]
}

// Len retorna el número de claves canónicas únicas.
func (r *EnumResult) Len() int {
	return len(r.items)
}

// Keys retorna todas las claves canónicas ordenadas alfabéticamente.
func (r *EnumResult) Keys() []string {
	keys := make([]string, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items retorna los items ordenados por confianza descendente y, a igualdad,
// por clave. Orden estable independiente del orden de finalización.
func (r *EnumResult) Items() []*CanonicalItem {
	out := make([]*CanonicalItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence() != out[j].Confidence() {
			return out[i].Confidence() > out[j].Confidence()
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// AddWarning registra una advertencia no fatal.
func (r *EnumResult) AddWarning(source, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Source:    source,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Finalize cierra la ventana temporal y recalcula estadísticas derivadas.
func (r *EnumResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	r.Stats.Unique = len(r.items)
	corroborated := 0
	for _, item := range r.items {
		if item.Confidence() >= 2 {
			corroborated++
		}
	}
	r.Stats.Corroborated = corroborated
}

// Summary retorna un resumen legible del resultado.
func (r *EnumResult) Summary() string {
	return fmt.Sprintf(
		"EnumResult{target=%s, unique=%d, corroborated=%d, raw=%d, warnings=%d, duration=%s}",
		r.Target.Root(),
		r.Stats.Unique,
		r.Stats.Corroborated,
		r.Stats.RawLines,
		len(r.Warnings),
		r.Duration,
	)
}
