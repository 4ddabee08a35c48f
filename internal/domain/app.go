package domain

import "strings"

type Author struct {
	Name  string `validate:"required"`
	Group string `validate:"required"`
}

func NewAuthor(name, group string) (Author, error) {
	a := Author{Name: strings.TrimSpace(name), Group: strings.TrimSpace(group)}
	if err := validateStruct("author", a); err != nil {
		return Author{}, err
	}
	return a, nil
}

// App describes the running application on the index and author pages.
type App struct {
	Name    string `validate:"required"`
	Version string `validate:"required"`
	Author  Author
}

func NewApp(name, version string, author Author) (App, error) {
	a := App{Name: strings.TrimSpace(name), Version: strings.TrimSpace(version), Author: author}
	if err := validateStruct("app", a); err != nil {
		return App{}, err
	}
	return a, nil
}
