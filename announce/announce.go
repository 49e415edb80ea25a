package announce

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/convert"
	"github.com/jdevries/easyenergy-go/database"
)

// Announcer publishes the tariff for the running hour to an MQTT broker
// so home automation can react to price changes.
type Announcer struct {
	client mqtt.Client
	logger *slog.Logger
	topic  string
}

func New(cnfg config.AppConfigMqtt) *Announcer {
	logger := slog.Default().With("module", "announce")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cnfg.Host, cnfg.Port))
	opts.SetClientID(cnfg.GetClientId())
	if cnfg.Username != "" {
		opts.SetUsername(cnfg.Username)
		opts.SetPassword(cnfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("announce MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("announce MQTT connection lost", slog.Any("error", err))
	}

	mqttLogger := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLogger, slog.LevelWarn)

	return &Announcer{
		client: mqtt.NewClient(opts),
		logger: logger,
		topic:  cnfg.GetTopic(),
	}
}

func (a *Announcer) Connect() error {
	a.logger.Debug("connecting announce MQTT client")
	if token := a.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (a *Announcer) Disconnect() {
	a.logger.Info("disconnecting announce MQTT client")
	a.client.Disconnect(250)
}

type electricityMessage struct {
	Hour         string  `json:"hour"`
	UsageEurKWh  float64 `json:"usage_eur_kwh"`
	UsageEurMWh  float64 `json:"usage_eur_mwh"`
	ReturnEurKWh float64 `json:"return_eur_kwh"`
	ReturnEurMWh float64 `json:"return_eur_mwh"`
}

type gasMessage struct {
	Hour    string  `json:"hour"`
	PriceM3 float64 `json:"price_eur_m3"`
}

func (a *Announcer) PublishElectricity(row database.ElectricityTariffRow) error {
	return a.publish(a.topic+"/electricity", electricityMessage{
		Hour:         row.When.IsoString(),
		UsageEurKWh:  row.Usage,
		UsageEurMWh:  convert.TwoDecimals(convert.EurPerMWh(row.Usage)),
		ReturnEurKWh: row.Return,
		ReturnEurMWh: convert.TwoDecimals(convert.EurPerMWh(row.Return)),
	})
}

func (a *Announcer) PublishGas(row database.GasTariffRow) error {
	return a.publish(a.topic+"/gas", gasMessage{
		Hour:    row.When.IsoString(),
		PriceM3: row.Price,
	})
}

func (a *Announcer) publish(topic string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message for %s: %w", topic, err)
	}

	// Retained, a late subscriber gets the running hour at once.
	token := a.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("timeout when publishing to %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("error when publishing to %s: %w", topic, token.Error())
	}

	a.logger.Debug("tariff published", slog.String("topic", topic))
	return nil
}
