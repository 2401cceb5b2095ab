package intents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/acelabs/ace/internal/apis/todo"
	"github.com/acelabs/ace/internal/apis/weather"
	"github.com/acelabs/ace/internal/entity"
)

const degrees = "°"

// addTodoPatterns cover the phrasings of "add X to my list". Ordered most
// specific first so the task capture stays tight.
var addTodoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add the task (?P<task>.+) to my (todo|to-do|to do|task|tasks)`),
	regexp.MustCompile(`(?i)(add todo|add to-do|add to do|add task|add tasks) (?P<task>.+) to (todo|to-do|to do|task|tasks)`),
	regexp.MustCompile(`(?i)add to my (todo|to-do|to do|task|tasks) list (?P<task>.+)`),
	regexp.MustCompile(`(?i)add to my (todo|to-do|to do|task|tasks) (?P<task>.+)`),
	regexp.MustCompile(`(?i)add to (todo|to-do|to do|task|tasks) list (?P<task>.+)`),
	regexp.MustCompile(`(?i)add (?P<task>.+) to my (todo|to-do|to do|task|tasks) list`),
	regexp.MustCompile(`(?i)add (?P<task>.+) to the (todo|to-do|to do|task|tasks) list`),
	regexp.MustCompile(`(?i)add (?P<task>.+) to my (todo|to-do|to do|task|tasks)`),
	regexp.MustCompile(`(?i)add (?P<task>.+) to (todo|to-do|to do|task|tasks)`),
}

// WeatherService answers weather questions for a location.
type WeatherService interface {
	Current(ctx context.Context, location string) (*weather.Report, error)
	Tomorrow(ctx context.Context, location string) (*weather.Report, error)
}

// TodoService manages the user's task list.
type TodoService interface {
	TasksToday(ctx context.Context) ([]string, error)
	AddTask(ctx context.Context, content string) (string, error)
}

// AppService opens and closes desktop applications.
type AppService interface {
	Open(ctx context.Context, name string) error
	Close(ctx context.Context, name string) (int, error)
}

// Deps are the services the builtin handlers draw on. Nil services degrade
// to apologetic replies instead of panics.
type Deps struct {
	Weather WeatherService
	Todo    TodoService

	// Apps is nil on platforms without an app manager; Platform names the
	// platform for the resulting reply.
	Apps     AppService
	Platform string

	// Extractor pulls locations out of weather questions.
	Extractor *entity.Extractor

	// DefaultLocation is used when a weather question names no place.
	DefaultLocation string

	Logger *slog.Logger
}

// RegisterBuiltins installs the stock intents on the registry.
func RegisterBuiltins(r *Registry, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r.Register(Unknown, func(ctx context.Context, _ string) string {
		return "Sorry, I don't know what you mean."
	})

	r.Register("greeting", func(ctx context.Context, _ string) string {
		return "Hello!"
	})

	r.Register("goodbye", func(ctx context.Context, _ string) string {
		return "Goodbye!"
	}, WithExit())

	r.Register("open_app", deps.openApp, WithText())
	r.Register("close_app", deps.closeApp, WithText())
	r.Register("current_weather", deps.currentWeather, WithText())
	r.Register("tomorrow_weather", deps.tomorrowWeather, WithText())
	r.Register("show_todo_list", deps.showTodoList)
	r.Register("add_todo", deps.addTodo, WithText())
}

// appName drops the leading verb, so "open firefox please" yields
// "firefox please" for the catalog's fuzzy match.
func appName(text string) string {
	_, rest, _ := strings.Cut(text, " ")
	return rest
}

func (d Deps) openApp(ctx context.Context, text string) string {
	if d.Apps == nil {
		return fmt.Sprintf("Sorry, I don't know how to open apps on this platform (%s).", d.Platform)
	}

	name := appName(text)

	if err := d.Apps.Open(ctx, name); err != nil {
		d.Logger.Debug("open app failed", "app", name, "error", err)
		return fmt.Sprintf("Sorry, I can't open '%s'. Is it installed?", name)
	}

	return fmt.Sprintf("Opening '%s'...", name)
}

func (d Deps) closeApp(ctx context.Context, text string) string {
	if d.Apps == nil {
		return fmt.Sprintf("Sorry, I don't know how to close apps on this platform (%s).", d.Platform)
	}

	name := appName(text)

	code, err := d.Apps.Close(ctx, name)
	if err != nil {
		d.Logger.Debug("close app failed", "app", name, "error", err)
		return fmt.Sprintf("Sorry, I am having trouble closing '%s'.", name)
	}

	switch code {
	case 0:
		return fmt.Sprintf("Closing '%s'...", name)
	case -1:
		return fmt.Sprintf("I was unable to find the executable for '%s'. Is it defined in the app config?", name)
	case 128:
		return fmt.Sprintf("Sorry, I can't close '%s'. Is it running?", name)
	default:
		return fmt.Sprintf("Sorry, I am having trouble closing '%s'.", name)
	}
}

// location pulls a place name from the text, falling back to the configured
// default.
func (d Deps) location(text string) string {
	if d.Extractor != nil {
		if place, ok := d.Extractor.FirstGPE(text); ok {
			return place
		}
	}
	return d.DefaultLocation
}

func weatherErrorReply(err error, location string) string {
	switch {
	case errors.Is(err, weather.ErrInvalidKey):
		return "The configured weather API key is invalid. Please check the 'ACE_WEATHER_KEY' environment variable."
	case errors.Is(err, weather.ErrNotFound), errors.Is(err, weather.ErrNoLocation):
		return fmt.Sprintf("Couldn't find weather data for that location (%s). Check the spelling and try again.", location)
	case errors.Is(err, weather.ErrRateLimited):
		return "The configured weather API key has been used too many times. Please wait and try again."
	default:
		return "Sorry, I couldn't get the weather for you. Check your connection and try again."
	}
}

func (d Deps) currentWeather(ctx context.Context, text string) string {
	if d.Weather == nil {
		return "Sorry, I couldn't get the weather for you. Check your connection and try again."
	}

	location := d.location(text)

	report, err := d.Weather.Current(ctx, location)
	if err != nil {
		d.Logger.Debug("current weather failed", "location", location, "error", err)
		return weatherErrorReply(err, location)
	}

	return fmt.Sprintf("The weather in %s is %v%s%s and %s.",
		report.Location, report.Temp, degrees, report.Units, report.Condition)
}

func (d Deps) tomorrowWeather(ctx context.Context, text string) string {
	if d.Weather == nil {
		return "Sorry, I couldn't get the weather for you. Check your connection and try again."
	}

	location := d.location(text)

	report, err := d.Weather.Tomorrow(ctx, location)
	if err != nil {
		d.Logger.Debug("tomorrow weather failed", "location", location, "error", err)
		return weatherErrorReply(err, location)
	}

	return fmt.Sprintf("The weather tomorrow in %s will be %v%s%s and %s.",
		report.Location, report.Temp, degrees, report.Units, report.Condition)
}

func todoErrorText(err error) string {
	if errors.Is(err, todo.ErrMissingAPIKey) || errors.Is(err, todo.ErrUnauthorized) {
		return "API key error: Check your API key is setup correctly."
	}
	return "Connection error: Check your internet connection."
}

func (d Deps) showTodoList(ctx context.Context, _ string) string {
	if d.Todo == nil {
		return "Sorry, I couldn't get your tasks. " + todoErrorText(todo.ErrMissingAPIKey)
	}

	tasks, err := d.Todo.TasksToday(ctx)
	if err != nil {
		d.Logger.Debug("task list failed", "error", err)
		return "Sorry, I couldn't get your tasks. " + todoErrorText(err)
	}

	switch len(tasks) {
	case 0:
		return "You have no tasks today."
	case 1:
		return fmt.Sprintf("You have 1 task today. The task is '%s'.", tasks[0])
	default:
		return fmt.Sprintf("You have %d tasks today. The first one is '%s'.", len(tasks), tasks[0])
	}
}

func (d Deps) addTodo(ctx context.Context, text string) string {
	task, ok := findTask(text)
	if !ok {
		return "Sorry, I can't understand which task you wanted to add."
	}

	if d.Todo == nil {
		return "Sorry, I couldn't add your task. " + todoErrorText(todo.ErrMissingAPIKey)
	}

	added, err := d.Todo.AddTask(ctx, task)
	if err != nil {
		d.Logger.Debug("add task failed", "task", task, "error", err)
		return "Sorry, I couldn't add your task. " + todoErrorText(err)
	}

	return fmt.Sprintf("Added '%s' to your to-do list.", added)
}

// findTask extracts the task item from an add-task phrasing.
func findTask(text string) (string, bool) {
	for _, pattern := range addTodoPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		task := match[pattern.SubexpIndex("task")]
		task = strings.TrimSpace(strings.TrimPrefix(task, "add"))
		if task != "" {
			return task, true
		}
	}
	return "", false
}
