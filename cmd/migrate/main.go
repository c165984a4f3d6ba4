package main

import (
	"log"
	"os"

	"collabnote-be/internal/config"
	"collabnote-be/internal/model"
	"collabnote-be/pkg/database"

	"github.com/fatih/color"
)

// postgresConstraints adds the foreign keys AutoMigrate cannot express.
// The note head is deferred so a note and its revisions can be created and
// deleted inside one transaction in any order.
var postgresConstraints = []string{
	`DO $$ BEGIN
	   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_revisions_note') THEN
	     ALTER TABLE revisions ADD CONSTRAINT fk_revisions_note
	       FOREIGN KEY (note_id) REFERENCES notes(id);
	   END IF;
	 END $$;`,
	`DO $$ BEGIN
	   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_notes_current_revision') THEN
	     ALTER TABLE notes ADD CONSTRAINT fk_notes_current_revision
	       FOREIGN KEY (current_revision_id) REFERENCES revisions(id)
	       DEFERRABLE INITIALLY DEFERRED;
	   END IF;
	 END $$;`,
	`DO $$ BEGIN
	   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_history_entries_note') THEN
	     ALTER TABLE history_entries ADD CONSTRAINT fk_history_entries_note
	       FOREIGN KEY (note_id) REFERENCES notes(id);
	   END IF;
	 END $$;`,
}

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting migration (%s)...", cfg.Database.Driver)

	models := model.All()
	color.Yellow("Step 1: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	if cfg.Database.Driver == database.DriverPostgres {
		color.Yellow("Step 2: Adding foreign keys...")
		for _, sql := range postgresConstraints {
			if err := db.Exec(sql).Error; err != nil {
				color.Red("Error: Failed to add constraint: %v", err)
				os.Exit(1)
			}
		}
	}

	color.Green("Migration completed successfully.")
}
