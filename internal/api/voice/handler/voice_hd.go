package voiceHandler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/voice"
	"github.com/varshasramu/Smart-library-assistant/internal/middleware"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/handlerUtil"
	"github.com/varshasramu/Smart-library-assistant/pkg/response"
)

const (
	commandTimeout    = 10 * time.Second
	wsReadTimeout     = 60 * time.Second
	wsWriteTimeout    = 10 * time.Second
	wsMaxMessageBytes = 4096
)

func (h *VoiceHandler) ProcessVoiceCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), commandTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req voice.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.voiceService.ProcessCommand(c, req.Text, voice.TransportHTTP)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_voice_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *VoiceHandler) GetCapabilities(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.voiceService.Capabilities())
}

// handleVoiceWebSocket answers every text frame with one JSON frame. A frame is either
// the raw utterance or a {"text": "..."} object.
func (h *VoiceHandler) handleVoiceWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	logger := h.log.WithField("request_id", requestID)

	logger.Info("Voice WebSocket client connected")
	defer logger.Info("Voice WebSocket client disconnected")

	c.SetReadLimit(wsMaxMessageBytes)
	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Voice WebSocket error: %v", err)
			} else {
				logger.Info("Voice WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			logger.Warnf("Received unexpected message type: %d", messageType)
			if err := h.writeFrame(c, voice.ErrorFrame{Error: "only text frames are supported"}); err != nil {
				break
			}
			continue
		}

		if err := h.writeFrame(c, h.processFrame(requestID, message)); err != nil {
			logger.Errorf("Error writing JSON response: %v", err)
			break
		}
	}
}

func (h *VoiceHandler) processFrame(requestID string, message []byte) interface{} {
	req, err := parseFrame(message)
	if err != nil {
		return voice.ErrorFrame{Error: err.Error()}
	}

	if err := h.validator.Struct(req); err != nil {
		return voice.ErrorFrame{Error: "Validation failed: " + err.Error()}
	}

	c, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), commandTimeout)
	defer cancel()

	res, err := h.voiceService.ProcessCommand(c, req.Text, voice.TransportWebSocket)
	if err != nil {
		var respErr *response.Error
		if errors.As(err, &respErr) {
			return voice.ErrorFrame{Error: respErr.Error()}
		}
		h.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Voice WebSocket command failed")
		return voice.ErrorFrame{Error: "An unexpected error occurred"}
	}

	return res
}

func (h *VoiceHandler) writeFrame(c *websocket.Conn, payload interface{}) error {
	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}

	if err := c.WriteJSON(payload); err != nil {
		return err
	}

	return c.SetWriteDeadline(time.Time{})
}

func parseFrame(message []byte) (voice.CommandRequest, error) {
	text := strings.TrimSpace(string(message))
	if !strings.HasPrefix(text, "{") {
		return voice.CommandRequest{Text: text}, nil
	}

	var req voice.CommandRequest
	if err := jsoniter.Unmarshal([]byte(text), &req); err != nil {
		return voice.CommandRequest{}, errors.New("malformed command frame")
	}
	req.Text = strings.TrimSpace(req.Text)

	return req, nil
}
