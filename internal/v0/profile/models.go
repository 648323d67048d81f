package profile

import "time"

// Profile holds the planner defaults a user fills in once
type Profile struct {
	UserID          int64     `json:"userId"`
	Name            *string   `json:"name"`
	Gender          *string   `json:"gender"`
	Location        *string   `json:"location"`
	DefaultAdults   int       `json:"defaultAdults"`
	DefaultKids     int       `json:"defaultKids"`
	DefaultMeals    []string  `json:"defaultMeals"`
	DefaultCuisines []string  `json:"defaultCuisines"`
	DefaultDiet     *string   `json:"defaultDiet"`
	AvatarURL       *string   `json:"avatarUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Preferences are the scheduling defaults for the planner
type Preferences struct {
	UserID      int64     `json:"userId"`
	BusyDays    []string  `json:"busyDays"`
	CookingTime int       `json:"cookingTime"`
	Notes       string    `json:"notes"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserProfile is the GET /profile payload; either half may be null
type UserProfile struct {
	Profile     *Profile     `json:"profile"`
	Preferences *Preferences `json:"preferences"`
}

// UpdateRequest is the body of PATCH /profile. Nil fields keep their value.
type UpdateRequest struct {
	Name            *string  `json:"name" binding:"omitnil,max=100"`
	Gender          *string  `json:"gender" binding:"omitnil,oneof=male female other prefer_not_to_say"`
	Location        *string  `json:"location" binding:"omitnil,max=200"`
	DefaultAdults   *int     `json:"defaultAdults" binding:"omitnil,min=1,max=20"`
	DefaultKids     *int     `json:"defaultKids" binding:"omitnil,min=0,max=20"`
	DefaultMeals    []string `json:"defaultMeals" binding:"omitempty,dive,oneof=breakfast lunch dinner snacks"`
	DefaultCuisines []string `json:"defaultCuisines" binding:"omitempty,dive,oneof=italian mexican asian american mediterranean indian"`
	DefaultDiet     *string  `json:"defaultDiet" binding:"omitnil,max=50"`
	AvatarURL       *string  `json:"avatarUrl" binding:"omitnil,url|len=0"`

	BusyDays    []string `json:"busyDays" binding:"omitempty,dive,dayname"`
	CookingTime *int     `json:"cookingTime" binding:"omitnil,min=0,max=600"`
	Notes       *string  `json:"notes" binding:"omitnil,max=2000"`
}

//MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
//MenuMagic Copyright (C) 2025 MenuMagic
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
