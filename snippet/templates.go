package snippet

// Templates render a Request. Helper functions: q (double-quoted string
// literal), sq (single-quoted literal), sh (shell word), obj (inline map of
// pairs), swiftdict, upper, lower, title, tick.
var templates = map[string]string{
	"c_libcurl": `CURL *hnd = curl_easy_init();

curl_easy_setopt(hnd, CURLOPT_CUSTOMREQUEST, {{q .Method}});
curl_easy_setopt(hnd, CURLOPT_URL, {{q .URL}});
{{if .Headers}}
struct curl_slist *headers = NULL;
{{- range .Headers}}
headers = curl_slist_append(headers, {{q (printf "%s: %s" .Name .Value)}});
{{- end}}
curl_easy_setopt(hnd, CURLOPT_HTTPHEADER, headers);
{{end}}{{if .Body}}
curl_easy_setopt(hnd, CURLOPT_POSTFIELDS, {{q .Body}});
{{end}}
CURLcode ret = curl_easy_perform(hnd);
`,

	"csharp_restsharp": `var client = new RestClient({{q .URL}});
var request = new RestRequest(Method.{{upper .Method}});
{{- range .Headers}}
request.AddHeader({{q .Name}}, {{q .Value}});
{{- end}}
{{- if .Body}}
request.AddParameter({{q .ContentType}}, {{q .Body}}, ParameterType.RequestBody);
{{- end}}
IRestResponse response = client.Execute(request);
`,

	"go_native": `package main

import (
	"fmt"
	"io"
	"net/http"
{{- if .Body}}
	"strings"
{{- end}}
)

func main() {
	url := {{q .URL}}
{{if .Body}}
	payload := strings.NewReader({{q .Body}})

	req, _ := http.NewRequest({{q .Method}}, url, payload)
{{else}}
	req, _ := http.NewRequest({{q .Method}}, url, nil)
{{end}}
{{- range .Headers}}
	req.Header.Add({{q .Name}}, {{q .Value}})
{{- end}}

	res, _ := http.DefaultClient.Do(req)

	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	fmt.Println(res)
	fmt.Println(string(body))
}
`,

	"java_okhttp": `OkHttpClient client = new OkHttpClient();
{{if .Body}}
MediaType mediaType = MediaType.parse({{q .ContentType}});
RequestBody body = RequestBody.create(mediaType, {{q .Body}});
{{end}}
Request request = new Request.Builder()
  .url({{q .URL}})
  .method({{q .Method}}, {{if .Body}}body{{else}}null{{end}})
{{- range .Headers}}
  .addHeader({{q .Name}}, {{q .Value}})
{{- end}}
  .build();

Response response = client.newCall(request).execute();
`,

	"java_unirest": `HttpResponse<String> response = Unirest.{{lower .Method}}({{q .URL}})
{{- range .Headers}}
  .header({{q .Name}}, {{q .Value}})
{{- end}}
{{- if .Body}}
  .body({{q .Body}})
{{- end}}
  .asString();
`,

	"javascript_jquery": `const settings = {
  "async": true,
  "crossDomain": true,
  "url": {{q .URL}},
  "method": {{q .Method}},
  "headers": {{obj .Headers}}{{if .Body}},
  "processData": false,
  "data": {{q .Body}}{{end}}
};

$.ajax(settings).done(function (response) {
  console.log(response);
});
`,

	"javascript_xhr": `const data = {{if .Body}}{{q .Body}}{{else}}null{{end}};

const xhr = new XMLHttpRequest();
xhr.withCredentials = true;

xhr.addEventListener("readystatechange", function () {
  if (this.readyState === this.DONE) {
    console.log(this.responseText);
  }
});

xhr.open({{q .Method}}, {{q .URL}});
{{- range .Headers}}
xhr.setRequestHeader({{q .Name}}, {{q .Value}});
{{- end}}

xhr.send(data);
`,

	"node_native": `const http = require({{q .Scheme}});

const options = {
  "method": {{q .Method}},
  "hostname": {{q .Hostname}},
  "port": {{if .Port}}{{.Port}}{{else}}null{{end}},
  "path": {{q .PathQuery}},
  "headers": {{obj .Headers}}
};

const req = http.request(options, function (res) {
  const chunks = [];

  res.on("data", function (chunk) {
    chunks.push(chunk);
  });

  res.on("end", function () {
    const body = Buffer.concat(chunks);
    console.log(body.toString());
  });
});
{{if .Body}}
req.write({{q .Body}});
{{end}}
req.end();
`,

	"node_request": `const request = require("request");

const options = {
  method: {{q .Method}},
  url: {{q .URL}},
  headers: {{obj .Headers}}{{if .Body}},
  body: {{q .Body}}{{end}}
};

request(options, function (error, response, body) {
  if (error) throw new Error(error);

  console.log(body);
});
`,

	"node_unirest": `const unirest = require("unirest");

const req = unirest({{q .Method}}, {{q .URL}});

req.headers({{obj .Headers}});
{{if .Body}}
req.send({{q .Body}});
{{end}}
req.end(function (res) {
  if (res.error) throw new Error(res.error);

  console.log(res.body);
});
`,

	"objc_nsurlsession": `#import <Foundation/Foundation.h>

NSDictionary *headers = @{ {{- range $i, $h := .Headers}}{{if $i}},{{end}} @{{q $h.Name}}: @{{q $h.Value}}{{end}} };
{{if .Body}}
NSData *postData = [[NSData alloc] initWithData:[@{{q .Body}} dataUsingEncoding:NSUTF8StringEncoding]];
{{end}}
NSMutableURLRequest *request = [NSMutableURLRequest requestWithURL:[NSURL URLWithString:@{{q .URL}}]
                                                       cachePolicy:NSURLRequestUseProtocolCachePolicy
                                                   timeoutInterval:10.0];
[request setHTTPMethod:@{{q .Method}}];
[request setAllHTTPHeaderFields:headers];
{{- if .Body}}
[request setHTTPBody:postData];
{{- end}}

NSURLSession *session = [NSURLSession sharedSession];
NSURLSessionDataTask *dataTask = [session dataTaskWithRequest:request
                                            completionHandler:^(NSData *data, NSURLResponse *response, NSError *error) {
                                                if (error) {
                                                    NSLog(@"%@", error);
                                                } else {
                                                    NSHTTPURLResponse *httpResponse = (NSHTTPURLResponse *) response;
                                                    NSLog(@"%@", httpResponse);
                                                }
                                            }];
[dataTask resume];
`,

	"ocaml_cohttp": `open Cohttp_lwt_unix
open Cohttp
open Lwt

let uri = Uri.of_string {{q .URL}} in
let headers = Header.add_list (Header.init ()) [
{{- range $i, $h := .Headers}}{{if $i}};{{end}}
  ({{q $h.Name}}, {{q $h.Value}})
{{- end}}
] in
{{- if .Body}}
let body = Cohttp_lwt_body.of_string {{q .Body}} in
{{- end}}

Client.call ~headers{{if .Body}} ~body{{end}} {{tick}}{{upper .Method}} uri
>>= fun (res, body_stream) ->
  (* Do stuff with the result *)
`,

	"php_curl": `<?php

$curl = curl_init();

curl_setopt_array($curl, [
  CURLOPT_URL => {{sq .URL}},
  CURLOPT_RETURNTRANSFER => true,
  CURLOPT_CUSTOMREQUEST => {{sq .Method}},
{{- if .Body}}
  CURLOPT_POSTFIELDS => {{sq .Body}},
{{- end}}
  CURLOPT_HTTPHEADER => [
{{- range .Headers}}
    {{sq (printf "%s: %s" .Name .Value)}},
{{- end}}
  ],
]);

$response = curl_exec($curl);
$err = curl_error($curl);

curl_close($curl);

if ($err) {
  echo "cURL Error #:" . $err;
} else {
  echo $response;
}
`,

	"php_http1": `<?php

$request = new HttpRequest();
$request->setUrl({{sq .BaseURLPath}});
$request->setMethod(HTTP_METH_{{upper .Method}});
{{if .Query}}
$request->setQueryData([
{{- range .Query}}
  {{sq .Name}} => {{sq .Value}},
{{- end}}
]);
{{end}}
$request->setHeaders([
{{- range .Headers}}
  {{sq .Name}} => {{sq .Value}},
{{- end}}
]);
{{if .Body}}
$request->setBody({{sq .Body}});
{{end}}
try {
  $response = $request->send();

  echo $response->getBody();
} catch (HttpException $ex) {
  echo $ex;
}
`,

	"php_http2": `<?php

$client = new http\Client;
$request = new http\Client\Request;
{{if .Body}}
$body = new http\Message\Body;
$body->append({{sq .Body}});
{{end}}
$request->setRequestUrl({{sq .BaseURLPath}});
$request->setRequestMethod({{sq .Method}});
{{- if .Body}}
$request->setBody($body);
{{- end}}
{{- if .Query}}

$request->setQuery(new http\QueryString([
{{- range .Query}}
  {{sq .Name}} => {{sq .Value}},
{{- end}}
]));
{{- end}}

$request->setHeaders([
{{- range .Headers}}
  {{sq .Name}} => {{sq .Value}},
{{- end}}
]);

$client->enqueue($request)->send();
$response = $client->getResponse();

echo $response->getBody();
`,

	"python_python3": `import http.client

conn = http.client.{{if eq .Scheme "https"}}HTTPSConnection{{else}}HTTPConnection{{end}}({{q .Host}})
{{if .Body}}
payload = {{q .Body}}
{{end}}
headers = {{obj .Headers}}

conn.request({{q .Method}}, {{q .PathQuery}}{{if .Body}}, payload{{end}}, headers)

res = conn.getresponse()
data = res.read()

print(data.decode("utf-8"))
`,

	"python_requests": `import requests

url = {{q .BaseURLPath}}
{{if .Query}}
querystring = {{obj .Query}}
{{end}}{{if .Body}}
payload = {{q .Body}}
{{end}}
headers = {{obj .Headers}}

response = requests.request({{q .Method}}, url{{if .Body}}, data=payload{{end}}, headers=headers{{if .Query}}, params=querystring{{end}})

print(response.text)
`,

	"ruby_native": `require 'uri'
require 'net/http'
{{- if eq .Scheme "https"}}
require 'openssl'
{{- end}}

url = URI({{sq .URL}})

http = Net::HTTP.new(url.host, url.port)
{{- if eq .Scheme "https"}}
http.use_ssl = true
{{- end}}

request = Net::HTTP::{{title .Method}}.new(url)
{{- range .Headers}}
request[{{sq .Name}}] = {{sq .Value}}
{{- end}}
{{- if .Body}}
request.body = {{sq .Body}}
{{- end}}

response = http.request(request)
puts response.read_body
`,

	"shell_curl": `curl --request {{.Method}} \
  --url {{sh .URL}}
{{- range .Headers}} \
  --header {{sh (printf "%s: %s" .Name .Value)}}
{{- end}}
{{- if .Body}} \
  --data {{sh .Body}}
{{- end}}
`,

	"shell_httpie": `{{if .Body}}echo {{sh .Body}} |  \
  {{end}}http {{.Method}} {{sh .URL}}
{{- range .Headers}} \
  {{sh (printf "%s:%s" .Name .Value)}}
{{- end}}
`,

	"shell_wget": `wget --quiet \
  --method {{.Method}}
{{- range .Headers}} \
  --header {{sh (printf "%s: %s" .Name .Value)}}
{{- end}}
{{- if .Body}} \
  --body-data {{sh .Body}}
{{- end}} \
  --output-document \
  - {{sh .URL}}
`,

	"swift_nsurlsession": `import Foundation

let headers: [String: String] = {{swiftdict .Headers}}
{{if .Body}}
let postData = {{q .Body}}.data(using: .utf8)
{{end}}
let request = NSMutableURLRequest(url: NSURL(string: {{q .URL}})! as URL,
                                        cachePolicy: .useProtocolCachePolicy,
                                    timeoutInterval: 10.0)
request.httpMethod = {{q .Method}}
request.allHTTPHeaderFields = headers
{{- if .Body}}
request.httpBody = postData
{{- end}}

let session = URLSession.shared
let dataTask = session.dataTask(with: request as URLRequest, completionHandler: { (data, response, error) -> Void in
  if (error != nil) {
    print(error as Any)
  } else {
    let httpResponse = response as? HTTPURLResponse
    print(httpResponse as Any)
  }
})

dataTask.resume()
`,
}
