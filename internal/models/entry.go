package models

import (
	"sort"
	"strings"
)

// ReplicaEntry - состояние одного ключа в реплике.
// Current - последняя принятая запись. Если Conflict не пуст, он содержит
// полный набор взаимно конкурентных версий, Current равен nil, и ни одна
// запись не считается авторитетной до разрешения конфликта.
type ReplicaEntry struct {
	Current  *SaveRecord   `json:"current,omitempty"`
	Key      string        `json:"key"`
	Conflict []*SaveRecord `json:"conflict,omitempty"`
	Seq      uint64        `json:"seq"` // Seq номер последнего изменения в хранилище
}

// InConflict сообщает, ожидает ли ключ разрешения конфликта.
func (e *ReplicaEntry) InConflict() bool {
	return len(e.Conflict) > 0
}

// Versions возвращает все актуальные версии ключа: frontier при конфликте,
// иначе текущую запись.
func (e *ReplicaEntry) Versions() []*SaveRecord {
	if e == nil {
		return nil
	}
	if e.InConflict() {
		return e.Conflict
	}
	if e.Current == nil {
		return nil
	}
	return []*SaveRecord{e.Current}
}

// Clone создает глубокую копию записи реплики.
func (e *ReplicaEntry) Clone() *ReplicaEntry {
	if e == nil {
		return nil
	}

	cp := &ReplicaEntry{
		Key:     e.Key,
		Current: e.Current.Clone(),
		Seq:     e.Seq,
	}
	if len(e.Conflict) > 0 {
		cp.Conflict = make([]*SaveRecord, len(e.Conflict))
		for i, r := range e.Conflict {
			cp.Conflict[i] = r.Clone()
		}
	}
	return cp
}

// SortVersions упорядочивает версии детерминированно (по часам в строковом
// виде, затем по checksum), чтобы состояние реплики не зависело от порядка
// прихода записей.
func SortVersions(records []*SaveRecord) {
	sort.Slice(records, func(i, j int) bool {
		ci, cj := records[i].Clock.String(), records[j].Clock.String()
		if ci != cj {
			return ci < cj
		}
		return strings.Compare(records[i].Checksum.String(), records[j].Checksum.String()) < 0
	})
}
