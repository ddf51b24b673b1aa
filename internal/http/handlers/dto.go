package handlers

import (
	"github.com/pribylovaa/kueater-client/internal/collection"
	"github.com/pribylovaa/kueater-client/internal/models"
	"github.com/pribylovaa/kueater-client/internal/service"
)

type menuJSON struct {
	ID           string  `json:"id"`
	StallID      string  `json:"stall_id"`
	StallName    string  `json:"stall_name,omitempty"`
	Name         string  `json:"name"`
	Price        int     `json:"price"`
	ImageURL     string  `json:"image_url,omitempty"`
	Bookmarked   bool    `json:"bookmarked"`
	LikeCount    int     `json:"like_count"`
	DislikeCount int     `json:"dislike_count"`
	UserFeedback *string `json:"user_feedback"`
}

type stallJSON struct {
	ID              string `json:"id"`
	NameEN          string `json:"name_en"`
	NameTH          string `json:"name_th,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	FoodType        string `json:"food_type,omitempty"`
	OpenTime        string `json:"open_time,omitempty"`
	CloseTime       string `json:"close_time,omitempty"`
	Bookmarked      bool   `json:"bookmarked"`
	LikeCount       int    `json:"like_count"`
}

type stateJSON struct {
	NextPage  int    `json:"next_page,omitempty"`
	Exhausted bool   `json:"exhausted"`
	Loading   bool   `json:"loading"`
	Stale     bool   `json:"stale,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

type menuListResponse struct {
	Items []menuJSON `json:"items"`
	State stateJSON  `json:"state"`
}

type stallListResponse struct {
	Items []stallJSON `json:"items"`
	State stateJSON   `json:"state"`
}

type randomResponse struct {
	Item  *menuJSON `json:"item"`
	State stateJSON `json:"state"`
}

type mutationResponse struct {
	Ticket  string     `json:"ticket"`
	Outcome string     `json:"outcome"`
	Message string     `json:"message,omitempty"`
	Menu    *menuJSON  `json:"menu,omitempty"`
	Stall   *stallJSON `json:"stall,omitempty"`
}

type sessionRequest struct {
	UserID  string `json:"user_id"`
	IDToken string `json:"id_token"`
}

type sessionResponse struct {
	UserID   string `json:"user_id,omitempty"`
	SignedIn bool   `json:"signed_in"`
}

type feedbackRequest struct {
	Type string `json:"type"`
}

type foodTypesResponse struct {
	FoodTypes []string `json:"food_types"`
}

func menuFromModel(m models.MenuItem) menuJSON {
	out := menuJSON{
		ID:           m.ID,
		StallID:      m.StallID,
		StallName:    m.StallName,
		Name:         m.Name,
		Price:        m.Price,
		ImageURL:     m.ImageURL,
		Bookmarked:   m.Bookmarked,
		LikeCount:    m.LikeCount,
		DislikeCount: m.DislikeCount,
	}

	if m.UserFeedback != models.FeedbackNone {
		fb := string(m.UserFeedback)
		out.UserFeedback = &fb
	}

	return out
}

func stallFromModel(s models.Stall) stallJSON {
	return stallJSON{
		ID:              s.ID,
		NameEN:          s.NameEN,
		NameTH:          s.NameTH,
		ProfileImageURL: s.ProfileImageURL,
		FoodType:        s.FoodType,
		OpenTime:        s.OpenTime,
		CloseTime:       s.CloseTime,
		Bookmarked:      s.Bookmarked,
		LikeCount:       s.LikeCount,
	}
}

func stateFromModel(st collection.State) stateJSON {
	out := stateJSON{
		Exhausted: st.Exhausted,
		Loading:   st.Loading,
		Stale:     st.Stale,
		LastError: st.LastError,
	}

	if st.PageSize > 0 {
		out.NextPage = st.Page
	}

	return out
}

func menuList(v service.MenuView) menuListResponse {
	items := make([]menuJSON, 0, len(v.Items))
	for _, m := range v.Items {
		items = append(items, menuFromModel(m))
	}

	return menuListResponse{Items: items, State: stateFromModel(v.State)}
}

func stallList(v service.StallView) stallListResponse {
	items := make([]stallJSON, 0, len(v.Items))
	for _, s := range v.Items {
		items = append(items, stallFromModel(s))
	}

	return stallListResponse{Items: items, State: stateFromModel(v.State)}
}

func mutationFromResult(res service.Result) mutationResponse {
	return mutationResponse{
		Ticket:  res.Ticket,
		Outcome: string(res.Outcome),
		Message: res.Message,
	}
}
