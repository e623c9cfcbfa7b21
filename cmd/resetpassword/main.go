// Command resetpassword creates the admin account or replaces its password.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"boutiqueCMS/cmd/app"
	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/logger"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"

	"golang.org/x/term"
)

const minPasswordLength = 8

func main() {
	cfg := config.LoadConfig()
	log := logger.Init(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	flags := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	email := flags.String("email", cfg.AdminEmail, "email администратора")
	password := flags.String("password", "", "новый пароль (если не задан, читается из stdin)")
	flags.Parse(os.Args[1:])

	secret, err := readPassword(*password, os.Stdin, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось прочитать пароль")
	}

	db, repo := app.Database(cfg)
	defer db.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := resetPassword(ctx, repo.User, *email, secret)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("не удалось сбросить пароль")
	}

	if created {
		fmt.Fprintf(os.Stdout, "Администратор %s создан\n", *email)
		return
	}
	fmt.Fprintf(os.Stdout, "Пароль администратора %s обновлён\n", *email)
}

// readPassword prefers the flag value, then a hidden terminal prompt, then the first line of stdin.
func readPassword(fromFlag string, stdin io.Reader, prompt io.Writer) (string, error) {
	if fromFlag != "" {
		return validatePassword(fromFlag)
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Новый пароль: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return validatePassword(string(raw))
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return validatePassword(strings.TrimRight(line, "\r\n"))
}

func validatePassword(password string) (string, error) {
	if len([]rune(password)) < minPasswordLength {
		return "", fmt.Errorf("пароль должен содержать не менее %d символов", minPasswordLength)
	}
	return password, nil
}

// resetPassword updates the password of the user with email, creating the user when missing.
func resetPassword(ctx context.Context, users repository.UserRepository, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, errors.New("email администратора не задан")
	}

	user, err := users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		admin := &models.User{Email: email, Name: "Administrateur"}
		if err := users.CreateUser(ctx, admin, password); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	return false, users.UpdatePassword(ctx, user.ID, password)
}
