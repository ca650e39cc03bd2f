package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// UserCodec maps users to the users table
type UserCodec struct{}

var userSchema = store.NewSchema("users", []string{"id"},
	store.Int("id"),
	store.Int("gold"),
	store.Int("msg_count"),
	store.Int("gambles"),
	store.Int("gambles_won"),
	store.Int("button_press"),
	store.Int("experience"),
	store.Int("level"),
	store.Int("kills"),
	store.Int("deaths"),
	store.Text("weapon_id"),
	store.Text("location"),
	store.Int("floor"),
	store.JSON("unlocked", "[]"),
	store.JSON("cooldowns", "{}"),
)

func (UserCodec) Schema() store.Schema { return userSchema }

func (UserCodec) Encode(u *models.User) store.Record {
	return store.Record{
		u.ID,
		u.Gold,
		u.MsgCount,
		u.Gambles,
		u.GamblesWon,
		u.ButtonPress,
		u.Experience,
		u.Level,
		u.Kills,
		u.Deaths,
		u.WeaponID,
		string(u.Location),
		u.Floor,
		store.EncodeList(u.Unlocked),
		store.EncodeMap(u.Cooldowns),
	}
}

func (UserCodec) Decode(r store.Record) *models.User {
	userSchema.Check(r)
	return &models.User{
		ID:          r.Int(0),
		Gold:        r.Int(1),
		MsgCount:    r.Int(2),
		Gambles:     r.Int(3),
		GamblesWon:  r.Int(4),
		ButtonPress: r.Int(5),
		Experience:  r.Int(6),
		Level:       r.Int(7),
		Kills:       r.Int(8),
		Deaths:      r.Int(9),
		WeaponID:    r.String(10),
		Location:    models.Location(r.String(11)),
		Floor:       r.Int(12),
		Unlocked:    store.DecodeList[models.Location](r.String(13)),
		Cooldowns:   store.DecodeMap[int64](r.String(14)),
	}
}

// NewUserTable creates the users table adapter
func NewUserTable(db *database.DB) *store.Table[*models.User] {
	return store.NewTable[*models.User](db, UserCodec{})
}
