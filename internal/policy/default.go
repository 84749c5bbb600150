package policy

// Built-in networking symbols that must not appear in the compiled binary's
// symbol dump.
var defaultBinarySymbols = []string{
	"URLSession",
	"NSURLSession",
	"NSURLConnection",
	"CFSocket",
	"Network.framework",
	"socket(",
	"connect(",
	"bind(",
	"listen(",
	"accept(",
	"send(",
	"recv(",
	"sendto(",
	"recvfrom(",
	"CFNetworkExecuteProxyAutoConfigurationURL",
	"CFNetworkCopyProxiesForURL",
	"CFHTTPMessage",
	"CFHTTPStream",
	"SCNetworkReachability",
	"NSNetService",
	"NSStream",
	"CFStream",
	"CFReadStream",
	"CFWriteStream",
}

// Built-in imports and API names that must not appear in application sources.
var defaultSourceText = []string{
	"import Network",
	"import CFNetwork",
	"@import Network",
	"@import CFNetwork",
	"#import <CFNetwork/",
	"#import <Network/",
	"URLSession",
	"NSURLSession",
	"NSURLConnection",
}
