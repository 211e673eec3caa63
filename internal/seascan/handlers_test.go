package seascan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	coreconfig "github.com/aleRizzolo/SeaScan/core/config"
	"github.com/aleRizzolo/SeaScan/core/logger"
	"github.com/aleRizzolo/SeaScan/core/telegram/state"
	"github.com/aleRizzolo/SeaScan/internal/measurements"

	tele "gopkg.in/telebot.v3"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	m.Run()
}

// fakeContext implements the slice of tele.Context the handlers use.
type fakeContext struct {
	tele.Context

	text   string
	chat   *tele.Chat
	sender *tele.User

	sent     []string
	sentOpts [][]interface{}
	store    map[string]any
}

func newFakeContext(chatID int64, text string) *fakeContext {
	return &fakeContext{
		text:   text,
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID, Username: "marine_operator"},
		store:  map[string]any{},
	}
}

func (f *fakeContext) Text() string        { return f.text }
func (f *fakeContext) Chat() *tele.Chat    { return f.chat }
func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (f *fakeContext) Bot() *tele.Bot      { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, fmt.Sprint(what))
	f.sentOpts = append(f.sentOpts, opts)
	return nil
}

func (f *fakeContext) Get(key string) interface{}    { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) { f.store[key] = v }

func (f *fakeContext) lastMarkup() *tele.ReplyMarkup {
	if len(f.sentOpts) == 0 {
		return nil
	}
	for _, o := range f.sentOpts[len(f.sentOpts)-1] {
		if so, ok := o.(*tele.SendOptions); ok && so != nil {
			return so.ReplyMarkup
		}
	}
	return nil
}

func newTestHandlers(t *testing.T, store *fakeStore, inv *fakeInvoker) (*Handlers, state.Manager) {
	t.Helper()
	svc := mustNewService(t, store, inv, &fakeMailer{})
	flows := state.NewMemoryManager()
	h, err := NewHandlers(svc, flows)
	require.NoError(t, err)
	return h, flows
}

func TestStartGreetsByUsername(t *testing.T) {
	h, _ := newTestHandlers(t, &fakeStore{}, &fakeInvoker{})

	c := newFakeContext(1, "/start")
	require.NoError(t, h.Start(c))
	require.Len(t, c.sent, 1)
	require.Contains(t, c.sent[0], "Welcome marine_operator")
	require.Contains(t, c.sent[0], "/help")
}

func TestHelpSendsInlineMenu(t *testing.T) {
	h, _ := newTestHandlers(t, &fakeStore{}, &fakeInvoker{})

	c := newFakeContext(1, "/help")
	require.NoError(t, h.Help(c))
	require.Equal(t, []string{"Choose a command:"}, c.sent)

	markup := c.lastMarkup()
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 4) // eight actions, two per row
	require.Equal(t, "Generate Data", markup.InlineKeyboard[0][0].Text)
}

func TestSendEmailRegistersContinuation(t *testing.T) {
	h, flows := newTestHandlers(t, &fakeStore{}, &fakeInvoker{})

	c := newFakeContext(9, "/sendEmail")
	require.NoError(t, h.SendEmail(c))
	require.Equal(t, []string{msgInsertEmail}, c.sent)
	require.Equal(t, AwaitEmailRecipient, flows.Peek(9))
}

func TestEmailRecipientReceived(t *testing.T) {
	store := &fakeStore{records: sampleRecords()}
	svc := mustNewService(t, store, &fakeInvoker{}, &fakeMailer{})
	flows := state.NewMemoryManager()
	h, err := NewHandlers(svc, flows)
	require.NoError(t, err)

	c := newFakeContext(9, "operator@example.com")
	require.NoError(t, h.EmailRecipientReceived(c, nil))
	require.Equal(t, []string{msgEmailSent}, c.sent)
}

func TestPromptBeachEmptyTable(t *testing.T) {
	h, flows := newTestHandlers(t, &fakeStore{}, &fakeInvoker{})

	c := newFakeContext(9, "/switchSensorOn")
	require.NoError(t, h.SwitchSensorOn(c))
	require.Equal(t, []string{msgNoBeach}, c.sent)
	require.False(t, flows.InProgress(9))
}

func TestPromptBeachPresentsChoices(t *testing.T) {
	store := &fakeStore{records: []measurements.Record{
		{Beach: "long_beach"},
		{Beach: "venice_beach"},
		{Beach: "santa_monica_beach"},
	}}
	h, flows := newTestHandlers(t, store, &fakeInvoker{})

	c := newFakeContext(9, "/switchSensorOff")
	require.NoError(t, h.SwitchSensorOff(c))
	require.Equal(t, []string{msgSelectBeach}, c.sent)
	require.Equal(t, AwaitBeachOff, flows.Peek(9))

	markup := c.lastMarkup()
	require.NotNil(t, markup)
	require.Len(t, markup.ReplyKeyboard, 2) // three beaches, two per row
	require.Equal(t, "long_beach", markup.ReplyKeyboard[0][0].Text)
}

func TestBeachReceivedForwardsReply(t *testing.T) {
	inv := &fakeInvoker{}
	h, _ := newTestHandlers(t, &fakeStore{}, inv)

	c := newFakeContext(9, "venice_beach")
	require.NoError(t, h.BeachOnReceived(c, nil))
	require.Equal(t, []string{msgBeachDone}, c.sent)
	require.Equal(t, "venice_beach", inv.history[0].payload["beach"])

	markup := c.lastMarkup()
	require.NotNil(t, markup)
	require.True(t, markup.RemoveKeyboard)
}

func TestToggleAllHandlers(t *testing.T) {
	inv := &fakeInvoker{}
	h, _ := newTestHandlers(t, &fakeStore{}, inv)

	on := newFakeContext(9, "/ONsensors")
	require.NoError(t, h.SensorsOn(on))
	require.Equal(t, []string{msgStatusUpdated}, on.sent)

	off := newFakeContext(9, "/OFFsensors")
	require.NoError(t, h.SensorsOff(off))
	require.Equal(t, []string{msgStatusUpdated}, off.sent)
	require.Len(t, inv.history, 2)
}

func TestGenerateDataHandlerProgress(t *testing.T) {
	inv := &fakeInvoker{}
	h, _ := newTestHandlers(t, &fakeStore{}, inv)

	c := newFakeContext(9, "/generateData")
	require.NoError(t, h.GenerateData(c))
	require.Equal(t, []string{"Processing....", "Done!"}, c.sent)
	require.Equal(t, "9", inv.history[0].payload["cid"])
}

func TestNewAppWiring(t *testing.T) {
	svc := mustNewService(t, &fakeStore{}, &fakeInvoker{}, &fakeMailer{})
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "test-token"
	require.NoError(t, coreconfig.Normalize(cfg))

	app, err := NewApp(cfg, svc)
	require.NoError(t, err)

	reg := app.Registry()
	for _, key := range []string{
		"generateData", "averagePH", "averageHydrocarbons", "sendEmail",
		"switchSensorOn", "switchSensorOff", "ONsensors", "OFFsensors",
	} {
		_, ok := reg.GetCallback(key)
		require.True(t, ok, "callback %s not wired", key)
	}
	for _, name := range []string{
		"/start", "/help", "/generateData", "/averagePH", "/averageHydrocarbons",
		"/sendEmail", "/switchSensorOn", "/switchSensorOff", "/ONsensors", "/OFFsensors", "/monitor",
	} {
		_, _, ok := reg.LookupCommand(name)
		require.True(t, ok, "command %s not wired", name)
	}

	opts, err := app.TelegramRunOptions()
	require.NoError(t, err)
	// ten visible commands + hidden monitor + text route + callback route
	require.Len(t, opts.Routes, 13)
	require.NotEmpty(t, opts.Middlewares)
}

func TestFunctionMapDefaults(t *testing.T) {
	var a coreconfig.ActionsConfig
	cfg := &coreconfig.Config{Actions: a}
	cfg.Telegram.Token = "t"
	require.NoError(t, coreconfig.Normalize(cfg))

	fns := FunctionMap(cfg.Actions)
	require.Equal(t, "generatedata", fns["generateData"])
	require.Equal(t, "average", fns["computeAverages"])
	require.Equal(t, "onsensors", fns["allSensorsOn"])
	require.Equal(t, "offsensors", fns["allSensorsOff"])
	require.Equal(t, "onsensorbeach", fns["beachSensorOn"])
	require.Equal(t, "offsensorbeach", fns["beachSensorOff"])
	require.Equal(t, "activeMonitoring", fns["activeMonitoring"])
}
