package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request to log.  Server errors go out
// at error level, client errors at warn and the rest at info.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            fields := logrus.Fields{
                "method":     v.Method,
                "uri":        v.URI,
                "status":     v.Status,
                "latency_ms": v.Latency.Milliseconds(),
                "remote_ip":  v.RemoteIP,
            }
            if v.RequestID != "" {
                fields["request_id"] = v.RequestID
            }
            if id, ok := UserID(c); ok {
                fields["user_id"] = id
            }
            entry := log.WithFields(fields)
            if v.Error != nil {
                entry = entry.WithError(v.Error)
            }
            switch {
            case v.Status >= 500:
                entry.Error("request")
            case v.Status >= 400:
                entry.Warn("request")
            default:
                entry.Info("request")
            }
            return nil
        },
    })
}
