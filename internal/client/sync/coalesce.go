package sync

import "github.com/iudanet/medsync/internal/client/storage"

// outboxItem итоговое изменение сущности после схлопывания очереди.
// Seqs содержит все записи очереди, которые закрываются этим изменением.
type outboxItem struct {
	change  *storage.PendingChange
	seqs    []uint64
	dropped bool
}

// coalesce сворачивает очередь до одного изменения на сущность.
// Сервер проверяет версию каждого изменения, поэтому несколько изменений
// одной сущности в одном push дали бы ложный конфликт.
//
//	create + update -> create с последними данными
//	create + delete -> ничего не отправляется
//	иначе           -> последнее изменение
//
// Порядок результата совпадает с порядком первого появления сущности.
func coalesce(pending []*storage.PendingChange) []*outboxItem {
	items := make([]*outboxItem, 0, len(pending))
	index := make(map[string]*outboxItem, len(pending))

	for _, change := range pending {
		key := change.EntityType + "/" + change.SyncID

		item, ok := index[key]
		if !ok {
			item = &outboxItem{change: change}
			item.seqs = append(item.seqs, change.Seq)
			index[key] = item
			items = append(items, item)
			continue
		}

		item.seqs = append(item.seqs, change.Seq)
		item.change = fold(item, change)
	}

	return items
}

func fold(item *outboxItem, next *storage.PendingChange) *storage.PendingChange {
	prev := item.change

	// Сущность еще не существует на сервере
	if item.dropped || prev.Operation == opCreate {
		switch next.Operation {
		case opDelete:
			item.dropped = true
			return next
		default:
			item.dropped = false
			merged := *next
			merged.Operation = opCreate
			return &merged
		}
	}

	return next
}
