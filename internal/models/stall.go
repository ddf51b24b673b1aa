package models

// Stall — ларёк. Идентичность — локация (Stall Location).
// Необязательные поля пусты, если сервер их не прислал.
type Stall struct {
	ID              string
	NameEN          string
	NameTH          string
	ProfileImageURL string
	FoodType        string
	OpenTime        string // "HH.mm"
	CloseTime       string // "HH.mm"

	Bookmarked bool
	LikeCount  int
}

func (s Stall) Key() string { return s.ID }
