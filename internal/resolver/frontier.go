package resolver

import (
	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/models"
)

// FrontierResult - результат свертки набора версий одного ключа.
type FrontierResult struct {
	// Winners - максимальный набор недоминируемых версий.
	// Одна версия - победитель, несколько - конфликт.
	Winners []*models.SaveRecord
	// Stale - версии, доминируемые хотя бы одним победителем, и дубликаты.
	Stale []*models.SaveRecord
	// Corrupt - ошибки проверки отброшенных записей.
	Corrupt []error
}

// HasConflict возвращает true, если победителей больше одного.
func (r FrontierResult) HasConflict() bool {
	return len(r.Winners) > 1
}

// Frontier сводит две и более версии к максимальному набору: поврежденные
// записи исключаются, доминируемые попадают в Stale, повторы одной версии
// (часы и checksum совпадают) схлопываются. Результат не зависит от порядка
// аргументов: Winners отсортированы models.SortVersions.
func Frontier(records ...*models.SaveRecord) FrontierResult {
	var res FrontierResult

	valid := make([]*models.SaveRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := r.Verify(); err != nil {
			res.Corrupt = append(res.Corrupt, err)
			continue
		}
		valid = append(valid, r)
	}

	for i, r := range valid {
		dominated := false
		for j, other := range valid {
			if i == j {
				continue
			}
			if r.Clock.Compare(other.Clock) == crdt.Before {
				dominated = true
				break
			}
		}
		if dominated {
			res.Stale = append(res.Stale, r)
			continue
		}

		duplicate := false
		for _, w := range res.Winners {
			if w.SameVersion(r) {
				duplicate = true
				break
			}
		}
		if duplicate {
			res.Stale = append(res.Stale, r)
			continue
		}
		res.Winners = append(res.Winners, r)
	}

	models.SortVersions(res.Winners)
	return res
}
