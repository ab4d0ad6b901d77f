package domain

// Qualification квалификация нотариуса; Coefficient влияет на стоимость консультации
type Qualification struct {
	ID          int64
	Name        string
	Coefficient float64
}

// Notary нотариус вместе с недельным расписанием приёма.
// ScheduleVersion увеличивается при каждой записи расписания и используется
// для оптимистичной блокировки.
type Notary struct {
	ID              int64
	FIO             string
	Description     string
	PhotoPath       string
	OfficeAddress   string
	QualificationID int64
	Schedule        *Schedule
	ScheduleVersion int64

	// Заполняется только при выборке со связанной квалификацией
	Qualification *Qualification
}

// NotariesFilter фильтр списка нотариусов
type NotariesFilter struct {
	QualificationID *int64  // nil - все квалификации
	SearchFIO       *string // подстрока ФИО без учёта регистра
}
