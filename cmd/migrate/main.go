package main

import (
	"errors"
	"flag"
	"log"

	"MenuMagic/internal/env"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("path", "menumagic", "migration set under internal/databases/migrations")
	dbPath := flag.String("db", env.GetEnv(env.EnvDatabasePath, "./internal/databases/menumagic.db"), "path to the database file")
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	m, err := migrate.New(
		"file://internal/databases/migrations/"+*path,
		"sqlite3://"+*dbPath+"?_foreign_keys=on",
	)
	if err != nil {
		log.Fatal(err)
	}

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	log.Println("Database migration complete for the:", *path, "path")
}

/*
MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
MenuMagic Copyright (C) 2025 MenuMagic
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
