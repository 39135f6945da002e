package domain

import (
	"fmt"
	"strings"
)

// Маркеры legacy-кодирования зоны внутри заметок
// Исторически зона брони не имела своей колонки и записывалась тегом в свободный текст;
// колонка zone_id появилась позже, теги остаются для совместимости со старыми записями
const (
	zoneIDMarker   = "[id:"
	zoneNameMarker = "zona:"
)

// ZoneTag возвращает префикс заметок с тегами зоны
// Формат фиксирован: его читают старые потребители заметок
func ZoneTag(zone Zone) string {
	return fmt.Sprintf("[ID:%s] [Zona: %s]\n", zone.ID, zone.Name)
}

// NotesMatchZone определяет принадлежность legacy-записи (без zone_id) к зоне
// по тегам в заметках. Порядок проверок:
//  1. тег [id:<zoneID>] - принадлежит этой зоне
//  2. тег zona: <имя зоны> - принадлежит этой зоне
//  3. ни одного маркера зоны нет - запись учитывается в КАЖДОЙ зоне:
//     безопаснее недопродать места, чем перепродать
//  4. теги есть, но указывают на другую зону - не принадлежит
func NotesMatchZone(notes string, zone Zone) bool {
	lower := strings.ToLower(notes)

	if strings.Contains(lower, zoneIDMarker+strings.ToLower(zone.ID)+"]") {
		return true
	}

	if strings.Contains(lower, zoneNameMarker+" "+strings.ToLower(zone.Name)) {
		return true
	}

	if !strings.Contains(lower, zoneIDMarker) && !strings.Contains(lower, zoneNameMarker) {
		return true
	}

	return false
}

// InPool определяет принадлежность брони к пулу вместимости
// zone == nil - глобальный пул: считаются все активные брони.
// Для записей с заполненной колонкой zone_id используется она;
// legacy-записи без zone_id атрибутируются по тегам в заметках
func (r *Reservation) InPool(zone *Zone) bool {
	if zone == nil {
		return true
	}

	if r.ZoneID != nil {
		return *r.ZoneID == zone.ID
	}

	return NotesMatchZone(r.Notes, *zone)
}
