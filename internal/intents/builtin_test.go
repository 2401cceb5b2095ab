package intents

import (
	"context"
	"errors"
	"testing"

	"github.com/acelabs/ace/internal/apis/todo"
	"github.com/acelabs/ace/internal/apis/weather"
	"github.com/acelabs/ace/internal/entity"
)

type fakeWeather struct {
	report *weather.Report
	err    error
	gotLoc string
}

func (f *fakeWeather) Current(ctx context.Context, location string) (*weather.Report, error) {
	f.gotLoc = location
	return f.report, f.err
}

func (f *fakeWeather) Tomorrow(ctx context.Context, location string) (*weather.Report, error) {
	f.gotLoc = location
	return f.report, f.err
}

type fakeTodo struct {
	tasks []string
	added string
	err   error
}

func (f *fakeTodo) TasksToday(ctx context.Context) ([]string, error) {
	return f.tasks, f.err
}

func (f *fakeTodo) AddTask(ctx context.Context, content string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.added = content
	return content, nil
}

type fakeApps struct {
	openErr  error
	code     int
	closeErr error
}

func (f *fakeApps) Open(ctx context.Context, name string) error {
	return f.openErr
}

func (f *fakeApps) Close(ctx context.Context, name string) (int, error) {
	return f.code, f.closeErr
}

func newBuiltinRegistry(deps Deps) *Registry {
	r := NewRegistry(nil)
	RegisterBuiltins(r, deps)
	return r
}

func TestBuiltins_GreetingAndGoodbye(t *testing.T) {
	r := newBuiltinRegistry(Deps{})
	ctx := context.Background()

	response, exit := r.Run(ctx, "greeting", "hello")
	if response != "Hello!" || exit {
		t.Errorf("greeting = (%q, %v)", response, exit)
	}

	response, exit = r.Run(ctx, "goodbye", "bye")
	if response != "Goodbye!" || !exit {
		t.Errorf("goodbye = (%q, %v)", response, exit)
	}
}

func TestBuiltins_OpenApp(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		r := newBuiltinRegistry(Deps{Apps: &fakeApps{}})
		response, _ := r.Run(ctx, "open_app", "open firefox")
		if response != "Opening 'firefox'..." {
			t.Errorf("unexpected response %q", response)
		}
	})

	t.Run("unknown app", func(t *testing.T) {
		r := newBuiltinRegistry(Deps{Apps: &fakeApps{openErr: errors.New("not found")}})
		response, _ := r.Run(ctx, "open_app", "open netscape")
		if response != "Sorry, I can't open 'netscape'. Is it installed?" {
			t.Errorf("unexpected response %q", response)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		r := newBuiltinRegistry(Deps{Platform: "plan9"})
		response, _ := r.Run(ctx, "open_app", "open firefox")
		if response != "Sorry, I don't know how to open apps on this platform (plan9)." {
			t.Errorf("unexpected response %q", response)
		}
	})
}

func TestBuiltins_CloseApp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		apps *fakeApps
		want string
	}{
		{"closes", &fakeApps{code: 0}, "Closing 'firefox'..."},
		{"no executable", &fakeApps{code: -1}, "I was unable to find the executable for 'firefox'. Is it defined in the app config?"},
		{"not running", &fakeApps{code: 128}, "Sorry, I can't close 'firefox'. Is it running?"},
		{"error", &fakeApps{closeErr: errors.New("boom")}, "Sorry, I am having trouble closing 'firefox'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBuiltinRegistry(Deps{Apps: tt.apps})
			response, _ := r.Run(ctx, "close_app", "close firefox")
			if response != tt.want {
				t.Errorf("got %q, want %q", response, tt.want)
			}
		})
	}
}

func TestBuiltins_CurrentWeather(t *testing.T) {
	ctx := context.Background()
	extractor := entity.NewExtractor([]string{"london"})

	t.Run("success with extracted location", func(t *testing.T) {
		fake := &fakeWeather{report: &weather.Report{
			Location: "London", Condition: "light rain", Temp: 11.5, Units: "C",
		}}
		r := newBuiltinRegistry(Deps{Weather: fake, Extractor: extractor})

		response, _ := r.Run(ctx, "current_weather", "what's the weather in london")
		if response != "The weather in London is 11.5°C and light rain." {
			t.Errorf("unexpected response %q", response)
		}
		if fake.gotLoc != "london" {
			t.Errorf("expected extracted location, got %q", fake.gotLoc)
		}
	})

	t.Run("default location", func(t *testing.T) {
		fake := &fakeWeather{report: &weather.Report{
			Location: "Paris", Condition: "clear sky", Temp: 20, Units: "C",
		}}
		r := newBuiltinRegistry(Deps{Weather: fake, Extractor: extractor, DefaultLocation: "paris"})

		if _, exit := r.Run(ctx, "current_weather", "what's the weather like"); exit {
			t.Error("weather should not exit")
		}
		if fake.gotLoc != "paris" {
			t.Errorf("expected default location, got %q", fake.gotLoc)
		}
	})

	errTests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid key", weather.ErrInvalidKey, "The configured weather API key is invalid. Please check the 'ACE_WEATHER_KEY' environment variable."},
		{"not found", weather.ErrNotFound, "Couldn't find weather data for that location (london). Check the spelling and try again."},
		{"rate limited", weather.ErrRateLimited, "The configured weather API key has been used too many times. Please wait and try again."},
		{"network", errors.New("dial tcp: timeout"), "Sorry, I couldn't get the weather for you. Check your connection and try again."},
	}

	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBuiltinRegistry(Deps{Weather: &fakeWeather{err: tt.err}, Extractor: extractor})
			response, _ := r.Run(ctx, "current_weather", "weather in london")
			if response != tt.want {
				t.Errorf("got %q, want %q", response, tt.want)
			}
		})
	}
}

func TestBuiltins_TomorrowWeather(t *testing.T) {
	fake := &fakeWeather{report: &weather.Report{
		Location: "London", Condition: "few clouds", Temp: 12.1, Units: "C",
	}}
	r := newBuiltinRegistry(Deps{Weather: fake, Extractor: entity.NewExtractor([]string{"london"})})

	response, _ := r.Run(context.Background(), "tomorrow_weather", "weather tomorrow in london")
	if response != "The weather tomorrow in London will be 12.1°C and few clouds." {
		t.Errorf("unexpected response %q", response)
	}
}

func TestBuiltins_ShowTodoList(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		todo *fakeTodo
		want string
	}{
		{"no tasks", &fakeTodo{}, "You have no tasks today."},
		{"one task", &fakeTodo{tasks: []string{"water plants"}}, "You have 1 task today. The task is 'water plants'."},
		{"many tasks", &fakeTodo{tasks: []string{"pay rent", "water plants"}}, "You have 2 tasks today. The first one is 'pay rent'."},
		{"missing key", &fakeTodo{err: todo.ErrMissingAPIKey}, "Sorry, I couldn't get your tasks. API key error: Check your API key is setup correctly."},
		{"network", &fakeTodo{err: errors.New("dial tcp: timeout")}, "Sorry, I couldn't get your tasks. Connection error: Check your internet connection."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBuiltinRegistry(Deps{Todo: tt.todo})
			response, _ := r.Run(ctx, "show_todo_list", "")
			if response != tt.want {
				t.Errorf("got %q, want %q", response, tt.want)
			}
		})
	}
}

func TestBuiltins_AddTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("adds the task", func(t *testing.T) {
		fake := &fakeTodo{}
		r := newBuiltinRegistry(Deps{Todo: fake})

		response, _ := r.Run(ctx, "add_todo", "add buy milk to my todo list")
		if response != "Added 'buy milk' to your to-do list." {
			t.Errorf("unexpected response %q", response)
		}
		if fake.added != "buy milk" {
			t.Errorf("expected task 'buy milk', got %q", fake.added)
		}
	})

	t.Run("unintelligible phrasing", func(t *testing.T) {
		r := newBuiltinRegistry(Deps{Todo: &fakeTodo{}})

		response, _ := r.Run(ctx, "add_todo", "put something somewhere")
		if response != "Sorry, I can't understand which task you wanted to add." {
			t.Errorf("unexpected response %q", response)
		}
	})
}

func TestFindTask(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"add the task feed the cat to my todo list", "feed the cat", true},
		{"add buy milk to my tasks", "buy milk", true},
		{"add to my todo list call the bank", "call the bank", true},
		{"Add buy milk To My Todo", "buy milk", true},
		{"remind me about nothing", "", false},
	}

	for _, tt := range tests {
		got, ok := findTask(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("findTask(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}
