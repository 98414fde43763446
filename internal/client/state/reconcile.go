package state

import "github.com/google/uuid"

// RemoteRow представляет строку серверного снимка списка
type RemoteRow[T any] struct {
	RemoteID string
	Payload  T
	Rev      int64
}

// Merge сводит серверный снимок списка с локальным оптимистичным
// состоянием:
//   - записи с незавершенной записью не трогаются, их подтверждение
//     разберется с сервером само;
//   - известные RemoteID обновляются по принципу последней записи,
//     строка со старой ревизией отбрасывается;
//   - новые RemoteID вставляются как подтвержденные записи;
//   - подтвержденные локальные записи, пропавшие из снимка, удаляются.
//
// Дубликатов RemoteID после сведения не бывает.
func (l *ListView[T]) Merge(snapshot []RemoteRow[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	byRemoteID := make(map[string]*Entity[T], len(l.entities))
	for _, entity := range l.entities {
		if entity.RemoteID != "" {
			byRemoteID[entity.RemoteID] = entity
		}
	}

	seen := make(map[string]struct{}, len(snapshot))
	for _, row := range snapshot {
		if row.RemoteID == "" {
			continue
		}
		if _, dup := seen[row.RemoteID]; dup {
			continue
		}
		seen[row.RemoteID] = struct{}{}

		entity, ok := byRemoteID[row.RemoteID]
		if !ok {
			l.entities = append(l.entities, &Entity[T]{
				LocalID:  uuid.New().String(),
				RemoteID: row.RemoteID,
				Payload:  row.Payload,
				Rev:      row.Rev,
				seq:      l.takeSeq(),
			})
			continue
		}

		if entity.Pending || row.Rev <= entity.Rev {
			continue
		}
		entity.Payload = row.Payload
		entity.Rev = row.Rev
	}

	// Подтвержденные записи, которых больше нет на сервере
	kept := l.entities[:0]
	for _, entity := range l.entities {
		if entity.RemoteID != "" && !entity.Pending {
			if _, ok := seen[entity.RemoteID]; !ok {
				continue
			}
		}
		kept = append(kept, entity)
	}
	l.entities = kept

	l.resort()
}

// ApplyRemoteRow применяет одно событие изменения документа к списку.
// deleted удаляет подтвержденную запись, иначе строка обновляется
// или вставляется по тем же правилам, что и Merge.
func (l *ListView[T]) ApplyRemoteRow(row RemoteRow[T], deleted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if row.RemoteID == "" {
		return
	}

	for i, entity := range l.entities {
		if entity.RemoteID != row.RemoteID {
			continue
		}
		if entity.Pending {
			return
		}
		if deleted {
			l.entities = append(l.entities[:i], l.entities[i+1:]...)
			return
		}
		if row.Rev <= entity.Rev {
			return
		}
		entity.Payload = row.Payload
		entity.Rev = row.Rev
		l.resort()
		return
	}

	if deleted {
		return
	}

	l.entities = append(l.entities, &Entity[T]{
		LocalID:  uuid.New().String(),
		RemoteID: row.RemoteID,
		Payload:  row.Payload,
		Rev:      row.Rev,
		seq:      l.takeSeq(),
	})
	l.resort()
}
