package xreqctx

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/open-things/loggingex/pkg/context/xctx"
)

// =============================================================================
// 字段名与 Header 常量
// =============================================================================

// 请求标识与链路追踪的上下文字段名。
const (
	KeyRequestID = "request_id"
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
)

// HeaderRequestID 入站请求 ID 头，存在且非空时沿用其值。
const HeaderRequestID = "X-Request-ID"

// =============================================================================
// 提取函数
// =============================================================================

// Fields 从请求提取完整的上下文映射。
// 总是包含 RequestFields；按选项追加请求头、运行时信息、请求 ID 和
// 链路追踪字段。
func Fields(r *http.Request, opts ...Option) xctx.Fields {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return fieldsWithConfig(r, cfg)
}

func fieldsWithConfig(r *http.Request, cfg *config) xctx.Fields {
	fields := RequestFields(r)

	if cfg.headers {
		for name, value := range HeaderFields(r.Header) {
			fields[name] = value
		}
	}
	if cfg.runtimeInfo {
		for name, value := range RuntimeFields(r) {
			fields[name] = value
		}
	}
	if cfg.requestID {
		fields[KeyRequestID] = requestID(r)
	}
	if cfg.trace {
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			fields[KeyTraceID] = sc.TraceID().String()
			fields[KeySpanID] = sc.SpanID().String()
		}
	}
	return fields
}

// RequestFields 提取请求与服务端信息。
// 字段名用 request_ 前缀；缺失的值（无查询串、未知长度等）映射为空串。
func RequestFields(r *http.Request) xctx.Fields {
	scheme := requestScheme(r)
	host, port := serverHostPort(r, scheme)

	return xctx.Fields{
		"request_method":          r.Method,
		"request_path_info":       r.URL.Path,
		"request_query_string":    r.URL.RawQuery,
		"request_server_name":     host,
		"request_server_port":     port,
		"request_server_protocol": r.Proto,
		"request_content_type":    r.Header.Get("Content-Type"),
		"request_content_length":  contentLength(r),
		"request_uri":             scheme + "://" + r.Host + r.URL.RequestURI(),
		"request_application_uri": scheme + "://" + r.Host + "/",
	}
}

// HeaderFields 提取请求头。
// 名字转成 header_ 前缀的小写标识符（连字符等非标识符字符转下划线），
// 多值头用 ", " 拼接。
func HeaderFields(h http.Header) xctx.Fields {
	fields := make(xctx.Fields, len(h))
	for name, values := range h {
		fields["header_"+sanitizeHeaderName(name)] = strings.Join(values, ", ")
	}
	return fields
}

// RuntimeFields 提取协议运行时信息，字段名用 proto_ 前缀。
func RuntimeFields(r *http.Request) xctx.Fields {
	return xctx.Fields{
		"proto_version":     fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor),
		"proto_scheme":      requestScheme(r),
		"proto_tls":         r.TLS != nil,
		"proto_remote_addr": r.RemoteAddr,
	}
}

// =============================================================================
// 内部辅助函数
// =============================================================================

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// serverHostPort 拆分 Host 头，缺省端口按协议补齐。
func serverHostPort(r *http.Request, scheme string) (host, port string) {
	host, port, err := net.SplitHostPort(r.Host)
	if err != nil {
		host = r.Host
		if scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	return host, port
}

func contentLength(r *http.Request) string {
	if r.ContentLength < 0 {
		return ""
	}
	return strconv.FormatInt(r.ContentLength, 10)
}

// sanitizeHeaderName 把 Header 名转成合法的上下文变量名后缀。
func sanitizeHeaderName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// requestID 沿用入站 X-Request-ID，缺失时生成新的 UUID。
func requestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderRequestID)); id != "" {
		return id
	}
	return uuid.NewString()
}
