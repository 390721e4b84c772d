package commands

import (
	"fmt"
	"log"

	"workforce/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN', 'DASHBOARD');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            employee_id text not null,
            password text not null,
            role user_role,
            full_name text,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO users(employee_id, role, password)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create table: department",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: position.",
		Query: `
        CREATE TABLE IF NOT EXISTS position (
            id serial primary key,
            name text not null,
            department_id int references department(id),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       6,
		Description: "Alter table users: profile columns",
		Query: `
        ALTER TABLE users
        ADD COLUMN IF NOT EXISTS department_id int references department(id),
        ADD COLUMN IF NOT EXISTS position_id int references position(id),
        ADD COLUMN IF NOT EXISTS phone varchar(255),
        ADD COLUMN IF NOT EXISTS email varchar(255);`,
	},
	{
		Index:       7,
		Description: "Create table: attendance_events (append-only).",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance_events (
            id serial primary key,
            user_id int not null references users(id),
            type text not null,
            mode text not null,
            event_time timestamp not null,
            latitude double precision,
            longitude double precision,
            address text,
            photo text,
            notes text,
            created_at timestamp default now()
        );`,
	},
	{
		Index:       8,
		Description: "Index attendance_events by user and time.",
		Query: `
        CREATE INDEX IF NOT EXISTS idx_attendance_events_user_time
        ON attendance_events (user_id, event_time);`,
	},
	{
		Index:       9,
		Description: "Create table: remote_work_requests.",
		Query: `
        CREATE TABLE IF NOT EXISTS remote_work_requests (
            id serial primary key,
            user_id int not null references users(id),
            request_date date not null,
            status text not null default 'PENDING',
            reason text,
            reviewed_by int references users(id),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: leave_requests.",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_requests (
            id serial primary key,
            user_id int not null references users(id),
            start_date date not null,
            end_date date not null,
            leave_type text,
            status text not null default 'PENDING',
            reason text,
            reviewed_by int references users(id),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       11,
		Description: "Create table: holidays.",
		Query: `
        CREATE TABLE IF NOT EXISTS holidays (
            id serial primary key,
            name text,
            day date not null,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       12,
		Description: "Create table: tasks.",
		Query: `
        CREATE TABLE IF NOT EXISTS tasks (
            id serial primary key,
            user_id int not null references users(id),
            title text not null,
            description text,
            status text not null default 'TODO',
            due_date date,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       13,
		Description: "Create table: office_info.",
		Query: `
        CREATE TABLE IF NOT EXISTS office_info (
            id serial primary key,
            company_name text not null default '',
            latitude double precision not null default 0,
            longitude double precision not null default 0,
            radius double precision not null default 200,
            start_time text not null default '09:00',
            end_time text not null default '18:00',
            late_time text not null default '09:15',
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       14,
		Description: "Seed the single office_info row.",
		Query: `
        INSERT INTO office_info (company_name)
        SELECT ''
        WHERE NOT EXISTS (SELECT id FROM office_info);
        `,
	},
}

func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
