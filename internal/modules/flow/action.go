package flow

// Main menu and flow button labels. The transport adapter matches incoming
// text against these and the controller emits them on keyboards, so they live
// in one place.
const (
	BtnBook        = "Забронировать оборудование"
	BtnBusyDates   = "Занятые даты"
	BtnMyBookings  = "Мои бронирования"
	BtnAllBookings = "Все бронирования"
	BtnDelete      = "Удалить бронь"
	BtnEdit        = "Редактировать бронь"
	BtnArchive     = "Архив бронирований"

	BtnBack           = "Назад"
	BtnDone           = "Готово"
	BtnCancel         = "Отмена"
	BtnChangeDate     = "Изменить дату"
	BtnConfirm        = "Подтвердить бронь"
	BtnAddMore        = "Добавить еще оборудование"
	BtnRemove         = "Удалить оборудование"
	BtnCancelEstimate = "Отменить смету"
	BtnCancelEdit     = "Отмена редактирования"
)

// Callback payload prefixes, shared with the transport adapter.
const (
	CallbackDelete        = "delete_booking"
	CallbackEdit          = "edit_booking"
	CallbackEditDate      = "edit_date"
	CallbackEditEquipment = "edit_equipment"
	CallbackCancelEdit    = "cancel_edit"
)

// Kind is the closed set of user actions the controller understands. The
// transport adapter produces exactly one Action per update; anything it
// cannot classify arrives as KindSelect (free text naming a category or an
// item) or KindUnknown and is re-prompted in place.
type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindBeginBooking
	KindDateSelected
	KindSelect
	KindBack
	KindDone
	KindCancel
	KindChangeDate
	KindConfirm
	KindAddMore
	KindRemove
	KindCancelEstimate
	KindBusyDates
	KindMyBookings
	KindAllBookings
	KindArchive
	KindBeginDelete
	KindDeleteBooking
	KindBeginEdit
	KindEditBooking
	KindEditDate
	KindEditEquipment
	KindCancelEdit
)

// Action is one discrete user input, already resolved by the transport
// adapter: button labels matched to kinds, callback payloads parsed, the
// calendar widget reduced to a final date.
type Action struct {
	Kind Kind
	Name string // selected label with any availability suffix stripped
	Date string // YYYY-MM-DD, for KindDateSelected
	ID   int64  // booking id, for KindDeleteBooking / KindEditBooking
	Text string // raw input, kept for logging
}
