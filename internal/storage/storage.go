package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aiwuxian/project-delve/internal/models"
	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	// 确保目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("初始化数据库结构失败: %w", err)
	}

	return s, nil
}

func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		race TEXT,
		class TEXT,
		strength INTEGER DEFAULT 10,
		dexterity INTEGER DEFAULT 10,
		willpower INTEGER DEFAULT 10,
		toughness INTEGER DEFAULT 10,
		level INTEGER DEFAULT 1,
		xp INTEGER DEFAULT 0,
		hp_max INTEGER,
		hp_current INTEGER,
		damage_die TEXT,
		silver INTEGER DEFAULT 0,
		gold INTEGER DEFAULT 0,
		max_slots INTEGER DEFAULT 10,
		fatigued INTEGER DEFAULT 0,
		dying INTEGER DEFAULT 0,
		death_timer INTEGER DEFAULT 0,
		dead INTEGER DEFAULT 0,
		special_skill TEXT,
		financial_status TEXT,
		traits TEXT, -- JSON array
		inventory TEXT, -- JSON array
		equipment TEXT, -- JSON object
		status_effects TEXT, -- JSON array
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		party TEXT, -- JSON array of character IDs
		dungeon TEXT, -- JSON object, monsters carry resolved HP
		active_encounter TEXT, -- JSON object
		overworld_turn INTEGER DEFAULT 0,
		game_over INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS save_games (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		session_id TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_save_session ON save_games(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Character operations
func (s *Storage) CreateCharacter(char *models.Character) error {
	traitsJSON, _ := json.Marshal(char.Traits)
	inventoryJSON, _ := json.Marshal(char.Inventory)
	equipmentJSON, _ := json.Marshal(char.Equipment)
	effectsJSON, _ := json.Marshal(char.StatusEffects)

	_, err := s.db.Exec(`
		INSERT INTO characters (id, name, race, class, strength, dexterity, willpower, toughness,
			level, xp, hp_max, hp_current, damage_die, silver, gold, max_slots,
			fatigued, dying, death_timer, dead, special_skill, financial_status,
			traits, inventory, equipment, status_effects, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, char.ID, char.Name, char.Race, char.Class,
		char.Strength, char.Dexterity, char.Willpower, char.Toughness,
		char.Level, char.XP, char.HPMax, char.HPCurrent, char.DamageDie,
		char.Silver, char.Gold, char.MaxSlots,
		char.Fatigued, char.Dying, char.DeathTimer, char.Dead,
		char.SpecialSkill, char.FinancialStatus,
		traitsJSON, inventoryJSON, equipmentJSON, effectsJSON,
		char.CreatedAt, char.UpdatedAt)

	return err
}

func (s *Storage) scanCharacter(scan func(dest ...any) error) (*models.Character, error) {
	var char models.Character
	var traitsJSON, inventoryJSON, equipmentJSON, effectsJSON string

	err := scan(&char.ID, &char.Name, &char.Race, &char.Class,
		&char.Strength, &char.Dexterity, &char.Willpower, &char.Toughness,
		&char.Level, &char.XP, &char.HPMax, &char.HPCurrent, &char.DamageDie,
		&char.Silver, &char.Gold, &char.MaxSlots,
		&char.Fatigued, &char.Dying, &char.DeathTimer, &char.Dead,
		&char.SpecialSkill, &char.FinancialStatus,
		&traitsJSON, &inventoryJSON, &equipmentJSON, &effectsJSON,
		&char.CreatedAt, &char.UpdatedAt)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(traitsJSON), &char.Traits)
	json.Unmarshal([]byte(inventoryJSON), &char.Inventory)
	json.Unmarshal([]byte(equipmentJSON), &char.Equipment)
	json.Unmarshal([]byte(effectsJSON), &char.StatusEffects)

	return &char, nil
}

const characterColumns = `id, name, race, class, strength, dexterity, willpower, toughness,
	level, xp, hp_max, hp_current, damage_die, silver, gold, max_slots,
	fatigued, dying, death_timer, dead, special_skill, financial_status,
	traits, inventory, equipment, status_effects, created_at, updated_at`

func (s *Storage) GetCharacter(id string) (*models.Character, error) {
	row := s.db.QueryRow(`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)
	return s.scanCharacter(row.Scan)
}

func (s *Storage) UpdateCharacter(char *models.Character) error {
	traitsJSON, _ := json.Marshal(char.Traits)
	inventoryJSON, _ := json.Marshal(char.Inventory)
	equipmentJSON, _ := json.Marshal(char.Equipment)
	effectsJSON, _ := json.Marshal(char.StatusEffects)

	_, err := s.db.Exec(`
		UPDATE characters
		SET name=?, race=?, class=?, strength=?, dexterity=?, willpower=?, toughness=?,
			level=?, xp=?, hp_max=?, hp_current=?, damage_die=?, silver=?, gold=?, max_slots=?,
			fatigued=?, dying=?, death_timer=?, dead=?, special_skill=?, financial_status=?,
			traits=?, inventory=?, equipment=?, status_effects=?, updated_at=?
		WHERE id=?
	`, char.Name, char.Race, char.Class,
		char.Strength, char.Dexterity, char.Willpower, char.Toughness,
		char.Level, char.XP, char.HPMax, char.HPCurrent, char.DamageDie,
		char.Silver, char.Gold, char.MaxSlots,
		char.Fatigued, char.Dying, char.DeathTimer, char.Dead,
		char.SpecialSkill, char.FinancialStatus,
		traitsJSON, inventoryJSON, equipmentJSON, effectsJSON,
		time.Now(), char.ID)

	return err
}

// GetAllCharacters 获取所有角色列表
func (s *Storage) GetAllCharacters() ([]*models.Character, error) {
	rows, err := s.db.Query(`SELECT ` + characterColumns + ` FROM characters ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []*models.Character
	for rows.Next() {
		char, err := s.scanCharacter(rows.Scan)
		if err != nil {
			continue
		}
		characters = append(characters, char)
	}

	return characters, nil
}

func (s *Storage) DeleteCharacter(id string) error {
	_, err := s.db.Exec(`DELETE FROM characters WHERE id = ?`, id)
	return err
}

// Session operations
// 地城和遭遇战整体序列化为 JSON。怪物带着已投定的 HP 入库，
// 读档时不再重投生命骰。
func (s *Storage) SaveSession(session *models.Session) error {
	partyIDs := make([]string, len(session.Party))
	for i, c := range session.Party {
		partyIDs[i] = c.ID
	}
	partyJSON, _ := json.Marshal(partyIDs)
	dungeonJSON, _ := json.Marshal(session.Dungeon)
	encounterJSON, _ := json.Marshal(session.ActiveEncounter)

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions (id, name, party, dungeon, active_encounter, overworld_turn, game_over, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.Name, partyJSON, dungeonJSON, encounterJSON,
		session.OverworldTurn, session.GameOver, session.CreatedAt, session.UpdatedAt)

	if err != nil {
		return err
	}

	// 队伍成员单独落库，读档时按 ID 重组
	for _, c := range session.Party {
		if err := s.upsertCharacter(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) upsertCharacter(char *models.Character) error {
	traitsJSON, _ := json.Marshal(char.Traits)
	inventoryJSON, _ := json.Marshal(char.Inventory)
	equipmentJSON, _ := json.Marshal(char.Equipment)
	effectsJSON, _ := json.Marshal(char.StatusEffects)

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO characters (id, name, race, class, strength, dexterity, willpower, toughness,
			level, xp, hp_max, hp_current, damage_die, silver, gold, max_slots,
			fatigued, dying, death_timer, dead, special_skill, financial_status,
			traits, inventory, equipment, status_effects, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, char.ID, char.Name, char.Race, char.Class,
		char.Strength, char.Dexterity, char.Willpower, char.Toughness,
		char.Level, char.XP, char.HPMax, char.HPCurrent, char.DamageDie,
		char.Silver, char.Gold, char.MaxSlots,
		char.Fatigued, char.Dying, char.DeathTimer, char.Dead,
		char.SpecialSkill, char.FinancialStatus,
		traitsJSON, inventoryJSON, equipmentJSON, effectsJSON,
		char.CreatedAt, char.UpdatedAt)

	return err
}

func (s *Storage) GetSession(id string) (*models.Session, error) {
	var session models.Session
	var partyJSON, dungeonJSON, encounterJSON string

	err := s.db.QueryRow(`
		SELECT id, name, party, dungeon, active_encounter, overworld_turn, game_over, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id).Scan(&session.ID, &session.Name, &partyJSON, &dungeonJSON, &encounterJSON,
		&session.OverworldTurn, &session.GameOver, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return nil, err
	}

	var partyIDs []string
	json.Unmarshal([]byte(partyJSON), &partyIDs)
	for _, cid := range partyIDs {
		char, err := s.GetCharacter(cid)
		if err != nil {
			continue
		}
		session.Party = append(session.Party, char)
	}

	if dungeonJSON != "" && dungeonJSON != "null" {
		json.Unmarshal([]byte(dungeonJSON), &session.Dungeon)
	}
	if encounterJSON != "" && encounterJSON != "null" {
		json.Unmarshal([]byte(encounterJSON), &session.ActiveEncounter)
		rewireEncounter(&session)
	}

	return &session, nil
}

// rewireEncounter 反序列化后遭遇战里的角色和怪物是独立副本，
// 要重新指回会话队伍与当前房间的同一批对象，否则战斗改动不落盘。
func rewireEncounter(session *models.Session) {
	e := session.ActiveEncounter
	if e == nil {
		return
	}

	for i, snap := range e.Party {
		if actual := session.FindCharacter(snap.ID); actual != nil {
			e.Party[i] = actual
		}
	}

	if session.Dungeon == nil {
		return
	}
	room := session.Dungeon.CurrentRoom()
	if room == nil {
		return
	}
	byID := make(map[string]*models.Monster, len(room.Monsters))
	for _, m := range room.Monsters {
		byID[m.ID] = m
	}
	for i, snap := range e.Monsters {
		if actual, ok := byID[snap.ID]; ok {
			// 遭遇战里的状态是最新的，回写到房间怪物上
			*actual = *snap
			e.Monsters[i] = actual
		}
	}
}

func (s *Storage) GetAllSessions() ([]*models.Session, error) {
	rows, err := s.db.Query(`SELECT id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}

	var sessions []*models.Session
	for _, id := range ids {
		session, err := s.GetSession(id)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *Storage) DeleteSession(id string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// SaveGame operations
func (s *Storage) CreateSaveGame(save *models.SaveGame) error {
	_, err := s.db.Exec(`
		INSERT INTO save_games (id, name, session_id, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, save.ID, save.Name, save.SessionID, save.Description, save.CreatedAt)

	return err
}

func (s *Storage) GetSaveGame(id string) (*models.SaveGame, error) {
	var save models.SaveGame
	err := s.db.QueryRow(`
		SELECT id, name, session_id, description, created_at
		FROM save_games WHERE id = ?
	`, id).Scan(&save.ID, &save.Name, &save.SessionID, &save.Description, &save.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &save, nil
}

func (s *Storage) GetSaveGamesBySession(sessionID string) ([]models.SaveGame, error) {
	rows, err := s.db.Query(`
		SELECT id, name, session_id, description, created_at
		FROM save_games WHERE session_id = ?
		ORDER BY created_at DESC
	`, sessionID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []models.SaveGame
	for rows.Next() {
		var save models.SaveGame
		err := rows.Scan(&save.ID, &save.Name, &save.SessionID, &save.Description, &save.CreatedAt)
		if err != nil {
			continue
		}
		saves = append(saves, save)
	}

	return saves, nil
}

func (s *Storage) DeleteSaveGame(id string) error {
	_, err := s.db.Exec(`DELETE FROM save_games WHERE id = ?`, id)
	return err
}
