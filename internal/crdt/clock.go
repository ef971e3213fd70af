package crdt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iudanet/savesync/internal/errs"
)

// Ordering - результат сравнения двух векторных часов.
type Ordering int

const (
	// Equal - все счетчики совпадают.
	Equal Ordering = iota
	// Before - часы строго предшествуют другим (все <=, хотя бы один <).
	Before
	// After - часы строго следуют за другими (все >=, хотя бы один >).
	After
	// Concurrent - часы несравнимы, причинной связи нет.
	Concurrent
)

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "equal"
	case Before:
		return "before"
	case After:
		return "after"
	case Concurrent:
		return "concurrent"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// VectorClock представляет векторные часы: отображение device id -> счетчик.
// Отсутствующая запись эквивалентна нулю. Все операции возвращают новые часы
// и никогда не модифицируют получателя, поэтому значение можно безопасно
// передавать между горутинами.
type VectorClock map[string]uint64

// NewVectorClock создает пустые часы.
func NewVectorClock() VectorClock {
	return make(VectorClock)
}

// Get возвращает счетчик устройства (0, если записи нет).
func (vc VectorClock) Get(deviceID string) uint64 {
	return vc[deviceID]
}

// Copy возвращает глубокую копию часов.
func (vc VectorClock) Copy() VectorClock {
	cp := make(VectorClock, len(vc))
	for k, v := range vc {
		cp[k] = v
	}
	return cp
}

// Increment возвращает новые часы, в которых счетчик deviceID увеличен на 1.
// Используется при каждом локальном изменении.
func (vc VectorClock) Increment(deviceID string) VectorClock {
	cp := vc.Copy()
	cp[deviceID]++
	return cp
}

// Merge возвращает поточечный максимум двух часов.
// Операция коммутативна, ассоциативна и идемпотентна.
func (vc VectorClock) Merge(other VectorClock) VectorClock {
	cp := vc.Copy()
	for deviceID, counter := range other {
		if cp[deviceID] < counter {
			cp[deviceID] = counter
		}
	}
	return cp.normalize()
}

// Compare сравнивает часы с other. Сравнение тотально: для любой пары
// корректных часов возвращается ровно один из Before, After, Concurrent, Equal.
func (vc VectorClock) Compare(other VectorClock) Ordering {
	var less, greater bool

	for deviceID, counter := range vc {
		switch o := other[deviceID]; {
		case counter < o:
			less = true
		case counter > o:
			greater = true
		}
	}
	for deviceID, counter := range other {
		if _, seen := vc[deviceID]; seen {
			continue
		}
		if counter > 0 {
			less = true
		}
	}

	switch {
	case less && greater:
		return Concurrent
	case less:
		return Before
	case greater:
		return After
	default:
		return Equal
	}
}

// Equal сообщает, совпадают ли часы (нулевые записи игнорируются).
func (vc VectorClock) Equal(other VectorClock) bool {
	return vc.Compare(other) == Equal
}

// Dominates сообщает, что часы причинно включают историю other.
func (vc VectorClock) Dominates(other VectorClock) bool {
	return vc.Compare(other) == After
}

// IsZero сообщает, что все счетчики нулевые.
func (vc VectorClock) IsZero() bool {
	for _, counter := range vc {
		if counter != 0 {
			return false
		}
	}
	return true
}

// String returns a deterministic "{a:1, b:2}" representation.
func (vc VectorClock) String() string {
	if len(vc) == 0 {
		return "{}"
	}

	keys := vc.devices()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, vc[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// devices returns the device ids present in the clock, sorted.
func (vc VectorClock) devices() []string {
	keys := make([]string, 0, len(vc))
	for k := range vc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize drops explicit zero entries so that clocks equal under Compare
// also serialize identically.
func (vc VectorClock) normalize() VectorClock {
	for k, v := range vc {
		if v == 0 {
			delete(vc, k)
		}
	}
	return vc
}

// Text encodes the clock in its wire form: a JSON object device -> counter.
func (vc VectorClock) Text() string {
	if len(vc) == 0 {
		return "{}"
	}
	// map[string]uint64 всегда сериализуется, ошибки быть не может
	b, _ := json.Marshal(map[string]uint64(vc))
	return string(b)
}

// ParseClock разбирает wire-представление часов (JSON-объект device -> counter).
// Любое отклонение - не объект, пустой device id, отрицательное или дробное
// значение, лишние данные после объекта - приводит к ошибке MALFORMED_CLOCK.
// Частичного восстановления нет.
func ParseClock(text string) (VectorClock, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, malformed(text, err)
	}
	if raw == nil {
		return nil, malformed(text, fmt.Errorf("clock must be a JSON object"))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed(text, fmt.Errorf("trailing data after clock object"))
	}

	vc := make(VectorClock, len(raw))
	for deviceID, value := range raw {
		if strings.TrimSpace(deviceID) == "" {
			return nil, malformed(text, fmt.Errorf("empty device id"))
		}
		num, ok := value.(json.Number)
		if !ok {
			return nil, malformed(text, fmt.Errorf("counter for %q is not a number", deviceID))
		}
		counter, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return nil, malformed(text, fmt.Errorf("counter for %q is not a non-negative integer: %s", deviceID, num))
		}
		vc[deviceID] = counter
	}
	return vc.normalize(), nil
}

func malformed(text string, cause error) error {
	return errs.Wrap(errs.CodeMalformedClock, cause, "cannot parse vector clock").With("clock", text)
}
