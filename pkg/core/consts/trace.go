package consts

// TraceKey 请求上下文中保存 TraceId 的键
const TraceKey = "traceId"

// TraceHeaderName 上游传递追踪信息的请求头
const TraceHeaderName = "X-Trace-Context"
