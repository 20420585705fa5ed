package allowance

// Schedule prices one period.
type Schedule interface {
	// AmountDue returns the allowance owed for a period of days at age. An
	// age below zero means the date of birth is unknown.
	AmountDue(p Period, age, days int) float64
}

// FlatSchedule pays a single per-diem rate, capped per period. The opening
// period of the worksheet has its own, higher cap.
type FlatSchedule struct {
	DailyRate float64
	FirstCap  float64
	Cap       float64
}

// AmountDue implements Schedule.
func (s FlatSchedule) AmountDue(p Period, _ int, days int) float64 {
	if days <= 0 {
		return 0
	}
	amount := float64(days) * s.DailyRate
	limit := s.Cap
	if p.IsFirst() {
		limit = s.FirstCap
	}
	if limit > 0 && amount > limit {
		return limit
	}
	return amount
}

// Band is an inclusive age range with its per-diem rate.
type Band struct {
	MinAge    int
	MaxAge    int
	DailyRate float64
}

// BandedSchedule picks the per-diem rate by age.
type BandedSchedule struct {
	Bands []Band
}

// Rate returns the per-diem for age and whether a band matched.
func (s BandedSchedule) Rate(age int) (float64, bool) {
	if age < 0 {
		return 0, false
	}
	for _, band := range s.Bands {
		if age >= band.MinAge && age <= band.MaxAge {
			return band.DailyRate, true
		}
	}
	return 0, false
}

// AmountDue implements Schedule.
func (s BandedSchedule) AmountDue(_ Period, age, days int) float64 {
	if days <= 0 {
		return 0
	}
	rate, ok := s.Rate(age)
	if !ok {
		return 0
	}
	return float64(days) * rate
}

// SpendingSchedule prices the Spending Allowance worksheet.
var SpendingSchedule = FlatSchedule{
	DailyRate: 2.00,
	FirstCap:  60,
	Cap:       50,
}

// ClothingSchedule prices the CA Form worksheet.
var ClothingSchedule = BandedSchedule{
	Bands: []Band{
		{MinAge: 0, MaxAge: 4, DailyRate: 0.90},
		{MinAge: 5, MaxAge: 8, DailyRate: 1.10},
		{MinAge: 9, MaxAge: 11, DailyRate: 1.25},
		{MinAge: 12, MaxAge: 14, DailyRate: 1.45},
		{MinAge: 15, MaxAge: 19, DailyRate: 1.65},
	},
}
