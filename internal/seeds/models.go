// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package seeds

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	Fake         bool   `db:"fake"`
}

type organizationRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Slug    string `db:"slug"`
	OwnerID string `db:"owner_id"`
	Fake    bool   `db:"fake"`
}

type membershipRow struct {
	ID             string `db:"id"`
	OrganizationID string `db:"organization_id"`
	UserID         string `db:"user_id"`
	Role           string `db:"role"`
	Fake           bool   `db:"fake"`
}

type courseRow struct {
	ID             string `db:"id"`
	OrganizationID string `db:"organization_id"`
	Title          string `db:"title"`
	Description    string `db:"description"`
	Published      bool   `db:"published"`
	Fake           bool   `db:"fake"`
}

type lessonRow struct {
	ID       string `db:"id"`
	CourseID string `db:"course_id"`
	Title    string `db:"title"`
	Position int    `db:"position"`
	Fake     bool   `db:"fake"`
}

type quizRow struct {
	ID           string `db:"id"`
	CourseID     string `db:"course_id"`
	Title        string `db:"title"`
	PassingScore int    `db:"passing_score"`
	Fake         bool   `db:"fake"`
}

type questionRow struct {
	ID       string `db:"id"`
	QuizID   string `db:"quiz_id"`
	Prompt   string `db:"prompt"`
	Answer   string `db:"answer"`
	Position int    `db:"position"`
	Fake     bool   `db:"fake"`
}

type attemptRow struct {
	ID     string `db:"id"`
	QuizID string `db:"quiz_id"`
	UserID string `db:"user_id"`
	Score  int    `db:"score"`
	Passed bool   `db:"passed"`
	Fake   bool   `db:"fake"`
}

const (
	insertUser = `INSERT INTO users (id, email, name, password_hash, role, fake)
VALUES (:id, :email, :name, :password_hash, :role, :fake)`
	insertOrganization = `INSERT INTO organizations (id, name, slug, owner_id, fake)
VALUES (:id, :name, :slug, :owner_id, :fake)`
	insertMembership = `INSERT INTO memberships (id, organization_id, user_id, role, fake)
VALUES (:id, :organization_id, :user_id, :role, :fake)`
	insertCourse = `INSERT INTO courses (id, organization_id, title, description, published, fake)
VALUES (:id, :organization_id, :title, :description, :published, :fake)`
	insertLesson = `INSERT INTO lessons (id, course_id, title, position, fake)
VALUES (:id, :course_id, :title, :position, :fake)`
	insertQuiz = `INSERT INTO quizzes (id, course_id, title, passing_score, fake)
VALUES (:id, :course_id, :title, :passing_score, :fake)`
	insertQuestion = `INSERT INTO questions (id, quiz_id, prompt, answer, position, fake)
VALUES (:id, :quiz_id, :prompt, :answer, :position, :fake)`
	insertAttempt = `INSERT INTO quiz_attempts (id, quiz_id, user_id, score, passed, fake)
VALUES (:id, :quiz_id, :user_id, :score, :passed, :fake)`
)
