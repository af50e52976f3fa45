// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "time"

type Event struct {
	Title          string    `json:"title"`
	ConfirmandName string    `json:"confirmand_name"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DateLabel      string    `json:"date_label,omitempty"`
	TimeLabel      string    `json:"time_label,omitempty"`
	Location       *Location `json:"location"`
	DressCode      string    `json:"dress_code,omitempty"`
	Letter         *Letter   `json:"letter,omitempty"`
	RSVPEnabled    bool      `json:"rsvp_enabled"`
}

type Location struct {
	Name         string   `json:"name,omitempty"`
	AddressLines []string `json:"address_lines,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type Letter struct {
	Content   string `json:"content"`
	Signature string `json:"signature"`
}
